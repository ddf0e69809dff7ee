package kitchen

import "errors"

var (
	// ErrNotFound -> order atau item tidak ada di working set
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition -> transisi status tidak diizinkan dari status sekarang
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrValidation -> record dari store tidak valid, ditolak saat ingest
	ErrValidation = errors.New("validation failed")
	// ErrStoreWrite -> perubahan sudah diterapkan di memori tapi gagal ditulis ke store
	ErrStoreWrite = errors.New("store write failed")
)
