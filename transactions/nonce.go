package transactions

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// UnlockNonceFunc releases the address lock taken by Nonce.Next. When inc is set
// the local nonce moves past n.
type UnlockNonceFunc func(inc bool, n uint64)

// Nonce keeps track of nonces handed out locally, per chain and address.
type Nonce struct {
	addrLock   *AddrLocker
	mu         sync.Mutex
	localNonce map[uint64]*sync.Map
}

func NewNonce() *Nonce {
	return &Nonce{
		addrLock:   &AddrLocker{},
		localNonce: make(map[uint64]*sync.Map),
	}
}

// Next locks from and returns the nonce to use. The caller must call the returned
// unlock function exactly once.
func (n *Nonce) Next(ctx context.Context, rpcWrapper *rpcWrapper, chainID uint64, from common.Address) (uint64, UnlockNonceFunc, error) {
	n.addrLock.LockAddr(from)
	current, err := n.GetCurrent(ctx, rpcWrapper, chainID, from)
	if err != nil {
		n.addrLock.UnlockAddr(from)
		return 0, nil, err
	}

	unlock := func(inc bool, nonce uint64) {
		if inc {
			n.chainNonces(chainID).Store(from, nonce+1)
		}
		n.addrLock.UnlockAddr(from)
	}

	return current, unlock, nil
}

// GetCurrent returns the highest of the local and the pending remote nonce.
func (n *Nonce) GetCurrent(ctx context.Context, rpcWrapper *rpcWrapper, chainID uint64, from common.Address) (uint64, error) {
	var localNonce uint64

	// get the local nonce
	if val, ok := n.chainNonces(chainID).Load(from); ok {
		localNonce = val.(uint64)
	}

	// get the remote nonce
	remoteNonce, err := rpcWrapper.PendingNonceAt(ctx, from)
	if err != nil {
		return 0, err
	}

	// if upstream node returned nonce higher than ours we will use it, as it probably means
	// that another client was used for sending transactions
	if remoteNonce > localNonce {
		return remoteNonce, nil
	}
	return localNonce, nil
}

func (n *Nonce) chainNonces(chainID uint64) *sync.Map {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.localNonce[chainID]; !ok {
		n.localNonce[chainID] = &sync.Map{}
	}
	return n.localNonce[chainID]
}
