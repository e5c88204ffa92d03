package db

import (
	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/model"
)

// records a client heartbeat and returns the stored row.
func CreateStatusCheck(clientName string) (model.StatusCheck, error) {
	var s model.StatusCheck
	const q = `
	INSERT INTO status_checks (client_name, created_at)
	VALUES ($1, now())
	RETURNING id, client_name, created_at;`
	if err := DB.Get(&s, q, clientName); err != nil {
		log.Error().Err(err).Msg("CreateStatusCheck failed")
		return model.StatusCheck{}, err
	}
	return s, nil
}

// returns the most recent heartbeats, newest first.
func ListStatusChecks(limit int) ([]model.StatusCheck, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	var out []model.StatusCheck
	const q = `
	SELECT id, client_name, created_at
	  FROM status_checks
	 ORDER BY created_at DESC
	 LIMIT $1;`
	if err := DB.Select(&out, q, limit); err != nil {
		log.Error().Err(err).Msg("ListStatusChecks failed")
		return nil, err
	}
	return out, nil
}
