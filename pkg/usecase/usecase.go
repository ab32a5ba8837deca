package usecase

import (
	"sync"

	"github.com/m-mizutani/docmirror/pkg/domain/model"
	"github.com/m-mizutani/docmirror/pkg/domain/types"
	"github.com/m-mizutani/docmirror/pkg/infra"
)

// DefaultWorkers keeps the pass strictly sequential
const DefaultWorkers = 1

type UseCase struct {
	clients   *infra.Clients
	registry  *model.Registry
	workers   int
	applyMode types.ApplyMode

	locksMu sync.Mutex
	locks   map[types.ResourceName]*sync.Mutex
}

type Option func(*UseCase)

// WithRegistry sets the resources that can be synced
func WithRegistry(registry *model.Registry) Option {
	return func(x *UseCase) {
		x.registry = registry
	}
}

// WithWorkers sets the number of concurrent blob downloads. Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(x *UseCase) {
		if n < 1 {
			n = 1
		}
		x.workers = n
	}
}

func WithApplyMode(mode types.ApplyMode) Option {
	return func(x *UseCase) {
		x.applyMode = mode
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:   clients,
		workers:   DefaultWorkers,
		applyMode: types.ApplyModeDirect,
		locks:     make(map[types.ResourceName]*sync.Mutex),
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// lockResource blocks until no other pass of the resource is running. The returned function
// releases the lock.
func (x *UseCase) lockResource(name types.ResourceName) func() {
	x.locksMu.Lock()
	mu, ok := x.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		x.locks[name] = mu
	}
	x.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
