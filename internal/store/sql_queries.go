package store

import (
	sq "github.com/Masterminds/squirrel"
)

const syncRevisionsTable = "sync_revisions"

// qb is the statement builder for the SQLite dialect.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const upsertSyncRevisionSuffix = "ON CONFLICT(store_id, uuid) DO UPDATE SET " +
	"local_revision = excluded.local_revision, " +
	"external_revision = excluded.external_revision, " +
	"updated_at = excluded.updated_at"

func buildUpsertSyncRevision(storeID, uuid, local, external string) (string, []any, error) {
	return qb.Insert(syncRevisionsTable).
		Columns("store_id", "uuid", "local_revision", "external_revision", "updated_at").
		Values(storeID, uuid, local, external, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix(upsertSyncRevisionSuffix).
		ToSql()
}

func buildGetSyncRevision(storeID, uuid string) (string, []any, error) {
	return qb.Select("local_revision", "external_revision").
		From(syncRevisionsTable).
		Where(sq.Eq{"store_id": storeID}).
		Where(sq.Eq{"uuid": uuid}).
		ToSql()
}

func buildListSyncRevisions(storeID string) (string, []any, error) {
	return qb.Select("uuid", "local_revision", "external_revision").
		From(syncRevisionsTable).
		Where(sq.Eq{"store_id": storeID}).
		OrderBy("uuid").
		ToSql()
}

func buildClearSyncRevisions(storeID string) (string, []any, error) {
	return qb.Delete(syncRevisionsTable).
		Where(sq.Eq{"store_id": storeID}).
		ToSql()
}
