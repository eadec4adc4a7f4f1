package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kubev2v/docsql/internal/models"
	"github.com/kubev2v/docsql/internal/store"
	srvErrors "github.com/kubev2v/docsql/pkg/errors"
	"github.com/kubev2v/docsql/pkg/scheduler"
	"github.com/kubev2v/docsql/pkg/schema"
	"github.com/kubev2v/docsql/pkg/translator"
)

// QueryService translates find requests for the catalog tables and runs
// them against the store.
type QueryService struct {
	catalog     *schema.Catalog
	translators map[string]*translator.Translator
	store       *store.Store
	scheduler   *scheduler.Scheduler[models.ResultSet]
	logger      *zap.SugaredLogger
}

func NewQueryService(catalog *schema.Catalog, st *store.Store, workers int) (*QueryService, error) {
	srv := &QueryService{
		catalog:     catalog,
		translators: make(map[string]*translator.Translator),
		store:       st,
		scheduler:   scheduler.NewScheduler[models.ResultSet](workers),
		logger:      zap.S().Named("query_service"),
	}

	for _, t := range catalog.Tables() {
		tr, err := translator.New(t.Name, t.Schema)
		if err != nil {
			srv.scheduler.Close()
			return nil, err
		}
		srv.translators[t.Name] = tr
	}

	return srv, nil
}

// Seed materializes every catalog table in the store.
func (s *QueryService) Seed(ctx context.Context) error {
	for _, t := range s.catalog.Tables() {
		if err := s.store.Tables().Seed(ctx, t); err != nil {
			return err
		}
		s.logger.Debugw("table seeded", "table", t.Name, "rows", len(t.Rows))
	}
	return nil
}

func (s *QueryService) Tables() []schema.Table {
	return s.catalog.Tables()
}

// Translate returns the SELECT statement for the query without running it.
func (s *QueryService) Translate(q models.Query) (string, error) {
	tr, err := s.translator(q.Table)
	if err != nil {
		return "", err
	}
	return tr.Find(q.Filter, q.Projection)
}

// Find runs the query on one of the scheduler workers. The result carries
// the translated text, while the store receives the bound form of the same
// query so values never reach DuckDB as SQL text.
func (s *QueryService) Find(ctx context.Context, q models.Query) (models.ResultSet, error) {
	tr, err := s.translator(q.Table)
	if err != nil {
		return models.ResultSet{}, err
	}

	statement, err := tr.Find(q.Filter, q.Projection)
	if err != nil {
		return models.ResultSet{}, err
	}

	bound, args, err := tr.Select(q.Filter, q.Projection)
	if err != nil {
		return models.ResultSet{Statement: statement}, err
	}

	if err := ctx.Err(); err != nil {
		return models.ResultSet{Statement: statement}, err
	}

	future := s.scheduler.AddWork(func(ctx context.Context) (models.ResultSet, error) {
		return s.store.Tables().Query(ctx, bound, args...)
	})

	rs, err := future.Wait(ctx)
	if err != nil {
		return models.ResultSet{Statement: statement}, fmt.Errorf("running %q: %w", statement, err)
	}
	rs.Statement = statement

	s.logger.Debugw("query done", "table", q.Table, "statement", bound, "args", args, "rows", rs.Len())
	return rs, nil
}

func (s *QueryService) translator(table string) (*translator.Translator, error) {
	tr, ok := s.translators[table]
	if !ok {
		return nil, srvErrors.NewTableNotFoundError(table)
	}
	return tr, nil
}

func (s *QueryService) Close() {
	s.scheduler.Close()
}
