// exposes a Store interface so controllers can be exercised against fakes
package db

import (
	"github.com/trucksimfm/companion/internal/model"
)

type Store interface {
	// staff accounts
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// client heartbeats
	CreateStatusCheck(clientName string) (model.StatusCheck, error)
	ListStatusChecks(limit int) ([]model.StatusCheck, error)
}

type pgStore struct{}

var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	return GetUserByEmail(email)
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	return GetUserByID(id)
}

func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) CreateStatusCheck(clientName string) (model.StatusCheck, error) {
	return CreateStatusCheck(clientName)
}

func (s *pgStore) ListStatusChecks(limit int) ([]model.StatusCheck, error) {
	return ListStatusChecks(limit)
}
