package asset

import (
	"fmt"

	"github.com/google/uuid"
)

// Asset is a typed descriptor built from one raw record.
//
// Implementations are immutable after construction and safe for concurrent
// use by multiple readers.
type Asset interface {
	// AssetID returns the global id copied from the record.
	AssetID() int
	// Kind returns the variant tag.
	Kind() Kind
	// Record returns the raw record the asset was built from.
	Record() Record
	// Create returns a new instance handle. It never mutates the asset.
	Create(instanceID int) *Instance
}

// Instance is a runtime handle created from an asset for one placement.
// Instances are owned by the caller; the library does not track them.
type Instance struct {
	Handle     uuid.UUID // unique per Create call
	InstanceID int       // caller-supplied placement id
	Asset      Asset
}

// AssetID returns the id of the asset the instance was created from.
func (i *Instance) AssetID() int { return i.Asset.AssetID() }

// Kind returns the variant of the source asset.
func (i *Instance) Kind() Kind { return i.Asset.Kind() }

func (i *Instance) String() string {
	return fmt.Sprintf("%s#%d/%d", i.Asset.Kind(), i.Asset.AssetID(), i.InstanceID)
}

func newInstance(a Asset, instanceID int) *Instance {
	return &Instance{
		Handle:     uuid.New(),
		InstanceID: instanceID,
		Asset:      a,
	}
}

// base holds the fields every variant shares.
type base struct {
	id     int
	record Record
}

func newBase(rec Record) (base, error) {
	id, err := rec.AssetID()
	if err != nil {
		return base{}, err
	}
	return base{id: id, record: rec}, nil
}

func (b *base) AssetID() int  { return b.id }
func (b *base) Record() Record { return b.record }
