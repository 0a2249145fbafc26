package store

import (
	"context"
	"database/sql"
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/resort-catalog/internal/models"
	srvErrors "github.com/kubev2v/resort-catalog/pkg/errors"
)

// ResortStore persists resorts together with their feature and environment
// associations. It also acts as the originator for undo history.
type ResortStore struct {
	entityStore[models.Resort]
}

func NewResortStore(conn *Connection, observers ...Observer) *ResortStore {
	return &ResortStore{entityStore: newEntityStore(conn, resortMapping(), observers...)}
}

func resortMapping() mapping[models.Resort] {
	return mapping[models.Resort]{
		table:   tableResorts,
		from:    tableResorts,
		columns: []string{"id", "name", "price"},
		filters: columnSet{"id": "id", "name": "name", "price": "price"},
		orderBy: "id",
		scan: func(rows *sql.Rows) (models.Resort, error) {
			var r models.Resort
			err := rows.Scan(&r.ID, &r.Name, &r.Price)
			return r, err
		},
		id: func(r models.Resort) int64 { return r.ID },
		key: func(r models.Resort) []Condition {
			return []Condition{Eq("name", r.Name), Eq("price", r.Price)}
		},
		values: func(ctx context.Context, q QueryInterceptor, r models.Resort) (map[string]any, error) {
			if _, err := resolveLinks(ctx, q, r); err != nil {
				return nil, err
			}
			return map[string]any{"name": r.Name, "price": r.Price}, nil
		},
		afterWrite: writeResortLinks,
		enrich:     loadResortLinks,
	}
}

type resortLinks struct {
	features     []int64
	environments []int64
}

// resolveLinks maps the feature and environment names of r to ids. An unknown
// name yields an IntegrityError.
func resolveLinks(ctx context.Context, q QueryInterceptor, r models.Resort) (resortLinks, error) {
	var links resortLinks

	features, err := nameIndex(ctx, q, tableFeatures)
	if err != nil {
		return links, err
	}
	environments, err := nameIndex(ctx, q, tableEnvironments)
	if err != nil {
		return links, err
	}

	for _, name := range unique(r.Features) {
		id, ok := features[name]
		if !ok {
			return links, srvErrors.NewIntegrityError(tableFeatures, name)
		}
		links.features = append(links.features, id)
	}
	for _, name := range unique(r.Environments) {
		id, ok := environments[name]
		if !ok {
			return links, srvErrors.NewIntegrityError(tableEnvironments, name)
		}
		links.environments = append(links.environments, id)
	}

	return links, nil
}

// writeResortLinks replaces the association rows of resort id.
func writeResortLinks(ctx context.Context, q QueryInterceptor, id int64, r models.Resort, inserted bool) error {
	links, err := resolveLinks(ctx, q, r)
	if err != nil {
		return err
	}

	if !inserted {
		if _, err := q.ExecContext(ctx, queryDeleteResortFeatures, id); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, queryDeleteResortEnvironments, id); err != nil {
			return err
		}
	}

	for _, featureID := range links.features {
		if _, err := q.ExecContext(ctx, queryInsertResortFeature, id, featureID); err != nil {
			return err
		}
	}
	for _, environmentID := range links.environments {
		if _, err := q.ExecContext(ctx, queryInsertResortEnvironment, id, environmentID); err != nil {
			return err
		}
	}

	return nil
}

func loadResortLinks(ctx context.Context, q QueryInterceptor, resorts []models.Resort) error {
	ids := make([]int64, 0, len(resorts))
	for _, r := range resorts {
		ids = append(ids, r.ID)
	}

	features, err := linkedNames(ctx, q, sq.Select("rf.resort_id", "f.name").
		From(tableResortFeatures+" rf").
		Join("features f ON f.id = rf.feature_id").
		Where(sq.Eq{"rf.resort_id": ids}).
		OrderBy("f.name"))
	if err != nil {
		return err
	}

	environments, err := linkedNames(ctx, q, sq.Select("re.resort_id", "e.name").
		From(tableResortEnvironments+" re").
		Join("environments e ON e.id = re.environment_id").
		Where(sq.Eq{"re.resort_id": ids}).
		OrderBy("e.name"))
	if err != nil {
		return err
	}

	for i := range resorts {
		resorts[i].Features = features[resorts[i].ID]
		resorts[i].Environments = environments[resorts[i].ID]
	}
	return nil
}

func linkedNames(ctx context.Context, q QueryInterceptor, builder sq.SelectBuilder) (map[int64][]string, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = append(names[id], name)
	}
	return names, rows.Err()
}

func unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
