package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/aytac78/order-business-app-sub001/utils"
)

// boardRef is one venue's board and its holders. ready is closed once the
// open attempt has finished; board and err are set before that.
type boardRef struct {
	board *KitchenBoard
	err   error
	refs  int
	ready chan struct{}
}

// KitchenService keeps one open board per active venue. A board is opened on
// the first Acquire and closed when the last holder releases it.
type KitchenService struct {
	store VenueOrderStore
	opts  BoardOptions

	mu     sync.Mutex
	boards map[string]*boardRef
}

func NewKitchenService(store VenueOrderStore, opts BoardOptions) *KitchenService {
	return &KitchenService{
		store:  store,
		opts:   opts,
		boards: make(map[string]*boardRef),
	}
}

// Acquire returns the venue's board, opening it if needed. Every successful
// Acquire must be paired with Release. The board is opened without holding the
// service lock; concurrent Acquires of the same venue wait for that one open.
func (ks *KitchenService) Acquire(ctx context.Context, venueID string) (*KitchenBoard, error) {
	ks.mu.Lock()
	if ref, ok := ks.boards[venueID]; ok {
		ref.refs++
		ks.mu.Unlock()
		select {
		case <-ref.ready:
		case <-ctx.Done():
			ks.release(venueID, ref)
			return nil, ctx.Err()
		}
		if ref.err != nil {
			return nil, ref.err
		}
		return ref.board, nil
	}
	ref := &boardRef{refs: 1, ready: make(chan struct{})}
	ks.boards[venueID] = ref
	ks.mu.Unlock()

	board, err := OpenKitchenBoard(ctx, venueID, ks.store, ks.opts)

	ks.mu.Lock()
	defer ks.mu.Unlock()
	if err == nil && ks.boards[venueID] != ref {
		// service ditutup selama board dibuka
		board.Close()
		err = fmt.Errorf("kitchen service closed while opening venue %s", venueID)
	}
	ref.board, ref.err = board, err
	if err != nil {
		ref.board = nil
		if ks.boards[venueID] == ref {
			delete(ks.boards, venueID)
		}
	}
	close(ref.ready)
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (ks *KitchenService) Release(venueID string) {
	ks.mu.Lock()
	ref, ok := ks.boards[venueID]
	ks.mu.Unlock()
	if !ok {
		utils.ErrorLogger.Printf("release of venue %s without an open board", venueID)
		return
	}
	ks.release(venueID, ref)
}

func (ks *KitchenService) release(venueID string, ref *boardRef) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.boards[venueID] != ref {
		return
	}
	ref.refs--
	if ref.refs > 0 {
		return
	}
	delete(ks.boards, venueID)
	if ref.board != nil {
		ref.board.Close()
	}
}

// OpenBoards is the number of venues with an open board.
func (ks *KitchenService) OpenBoards() int {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	return len(ks.boards)
}

// Close closes every board regardless of holders. Used on shutdown.
func (ks *KitchenService) Close() {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	for venueID, ref := range ks.boards {
		if ref.board != nil {
			ref.board.Close()
		}
		delete(ks.boards, venueID)
	}
}
