package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/models"
)

type syncRevisionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncRevisionRepository returns a [SyncRevisionRepository] backed by db.
func NewSyncRevisionRepository(db *DB, logger *logger.Logger) SyncRevisionRepository {
	return &syncRevisionRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncRevisionRepository) SetLastSyncedRevision(ctx context.Context, storeID, uuid string, pair models.RevisionPair) error {
	log := logger.FromContext(ctx)

	if err := checkKey(storeID, uuid); err != nil {
		return err
	}

	query, args, err := buildUpsertSyncRevision(storeID, uuid, pair.Local, pair.External)
	if err != nil {
		log.Err(err).Str("func", "syncRevisionRepository.SetLastSyncedRevision").Msg("failed to build upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncRevisionRepository.SetLastSyncedRevision").
			Str("store_id", storeID).
			Str("uuid", uuid).
			Msg("failed to upsert sync revision")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *syncRevisionRepository) GetLastSyncedRevision(ctx context.Context, storeID, uuid string) (models.RevisionPair, error) {
	log := logger.FromContext(ctx)

	if err := checkKey(storeID, uuid); err != nil {
		return models.RevisionPair{}, err
	}

	query, args, err := buildGetSyncRevision(storeID, uuid)
	if err != nil {
		log.Err(err).Str("func", "syncRevisionRepository.GetLastSyncedRevision").Msg("failed to build select query")
		return models.RevisionPair{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var pair models.RevisionPair
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&pair.Local, &pair.External)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RevisionPair{}, ErrSyncRevisionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncRevisionRepository.GetLastSyncedRevision").
			Str("store_id", storeID).
			Str("uuid", uuid).
			Msg("failed to query sync revision")
		return models.RevisionPair{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return pair, nil
}

func (s *syncRevisionRepository) LastSyncRevisions(ctx context.Context, storeID string) (map[string]models.RevisionPair, error) {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return nil, ErrEmptyStoreID
	}

	query, args, err := buildListSyncRevisions(storeID)
	if err != nil {
		log.Err(err).Str("func", "syncRevisionRepository.LastSyncRevisions").Msg("failed to build select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncRevisionRepository.LastSyncRevisions").
			Str("store_id", storeID).
			Msg("failed to query sync revisions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	revisions := make(map[string]models.RevisionPair)
	for rows.Next() {
		var (
			uuid string
			pair models.RevisionPair
		)
		if err = rows.Scan(&uuid, &pair.Local, &pair.External); err != nil {
			log.Err(err).
				Str("func", "syncRevisionRepository.LastSyncRevisions").
				Str("store_id", storeID).
				Msg("failed to scan sync revision row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		revisions[uuid] = pair
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "syncRevisionRepository.LastSyncRevisions").
			Str("store_id", storeID).
			Msg("error iterating sync revision rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return revisions, nil
}

func (s *syncRevisionRepository) ClearSyncRevisions(ctx context.Context, storeID string) error {
	log := logger.FromContext(ctx)

	if storeID == "" {
		return ErrEmptyStoreID
	}

	query, args, err := buildClearSyncRevisions(storeID)
	if err != nil {
		log.Err(err).Str("func", "syncRevisionRepository.ClearSyncRevisions").Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncRevisionRepository.ClearSyncRevisions").
			Str("store_id", storeID).
			Msg("failed to clear sync revisions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func checkKey(storeID, uuid string) error {
	if storeID == "" {
		return ErrEmptyStoreID
	}
	if uuid == "" {
		return ErrEmptyUUID
	}
	return nil
}
