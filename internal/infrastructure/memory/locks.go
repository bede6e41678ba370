package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// keyLocks un mutex por clave (producto u orden de compra), creado bajo demanda.
type keyLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{m: make(map[string]*sync.Mutex)}
}

func (k *keyLocks) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.m[key]
	if !ok {
		l = &sync.Mutex{}
		k.m[key] = l
	}
	return l
}

// acquire bloquea las claves en el orden recibido y devuelve la función que las libera en orden inverso.
func (k *keyLocks) acquire(keys []string) func() {
	held := make([]*sync.Mutex, 0, len(keys))
	for _, key := range keys {
		l := k.get(key)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// lockKeys orden global de bloqueo: la orden de compra primero, luego los productos por ID ascendente.
func lockKeys(scope repository.LockScope) []string {
	keys := make([]string, 0, len(scope.ProductIDs)+1)
	if scope.PurchaseOrderID != "" {
		keys = append(keys, "po:"+scope.PurchaseOrderID)
	}
	ids := append([]string(nil), scope.ProductIDs...)
	sort.Strings(ids)
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		keys = append(keys, "product:"+id)
	}
	return keys
}
