package store

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientState is one persisted cart or favorites snapshot, keyed by the
// session cookie plus the container kind.
type ClientState struct {
	gorm.Model
	Key     string         `gorm:"uniqueIndex;size:191"`
	Payload datatypes.JSON `gorm:"type:json"`
}

// GormPersister stores snapshots in the client_states table so guest carts
// survive across requests.
type GormPersister struct {
	db *gorm.DB
}

func NewGormPersister(db *gorm.DB) *GormPersister {
	return &GormPersister{db: db}
}

func (g *GormPersister) Load(key string) ([]byte, error) {
	var state ClientState
	err := g.db.Where("`key` = ?", key).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(state.Payload), nil
}

func (g *GormPersister) Save(key string, data []byte) error {
	var state ClientState
	err := g.db.Where("`key` = ?", key).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = ClientState{Key: key, Payload: datatypes.JSON(data)}
		return g.db.Create(&state).Error
	}
	if err != nil {
		return err
	}
	state.Payload = datatypes.JSON(data)
	return g.db.Save(&state).Error
}
