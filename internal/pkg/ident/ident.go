package ident

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Префиксы разводят идентификаторы объявлений и заказов по разным
// пространствам: заказ никогда не переиспользует id объявления.
const (
	listingPrefix = "lst_"
	orderPrefix   = "ord_"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newULID() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// NewListingID выдаёт свежий идентификатор объявления.
func NewListingID() string {
	return listingPrefix + newULID()
}

// NewOrderID выдаёт свежий идентификатор заказа.
func NewOrderID() string {
	return orderPrefix + newULID()
}

// IsListingID проверяет, что строка похожа на идентификатор объявления.
func IsListingID(id string) bool {
	return hasULIDSuffix(id, listingPrefix)
}

// IsOrderID проверяет, что строка похожа на идентификатор заказа.
func IsOrderID(id string) bool {
	return hasULIDSuffix(id, orderPrefix)
}

func hasULIDSuffix(id, prefix string) bool {
	if len(id) != len(prefix)+ulid.EncodedSize {
		return false
	}
	if id[:len(prefix)] != prefix {
		return false
	}
	_, err := ulid.ParseStrict(id[len(prefix):])
	return err == nil
}
