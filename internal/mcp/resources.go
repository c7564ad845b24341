package mcp

import (
	"context"

	"github.com/positionfit/positionfit/internal/ai"
	"github.com/positionfit/positionfit/internal/ai/gemini"
	"github.com/positionfit/positionfit/internal/analysis"
	"github.com/positionfit/positionfit/internal/application"
	"github.com/positionfit/positionfit/internal/config"
	"github.com/positionfit/positionfit/internal/mcp/tools"
	"github.com/positionfit/positionfit/internal/store"
	storageneo4j "github.com/positionfit/positionfit/internal/storage/neo4j"
	"github.com/positionfit/positionfit/internal/transfer"
	"github.com/positionfit/positionfit/pkg/logging"
	pkgneo4j "github.com/positionfit/positionfit/pkg/neo4j"
	"github.com/positionfit/positionfit/pkg/sheets"
)

// Resources bundles everything the tool handlers need.
type Resources struct {
	Users        *store.Users
	Analyses     *analysis.Service
	Applications *application.Service
	Collaborator ai.Collaborator          // nil when Gemini is not configured
	Board        *transfer.SheetsExporter // nil when Sheets is not configured
	Neo4jClient  *pkgneo4j.Client         // nil when running on the memory store
}

// BuildResources wires the dependency graph by hand, degrading optional
// integrations instead of failing startup: no Neo4j means the in-memory
// store, no Gemini key means AI steps are disabled, no Sheets credentials
// means no board export.
func BuildResources(ctx context.Context, cfg config.Config, logger *logging.Logger) *Resources {
	res := &Resources{}

	var backing store.Store
	if cfg.Neo4j.URI != "" {
		client, err := pkgneo4j.NewClient(pkgneo4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
		})
		if err != nil {
			logger.Warn("failed to connect to Neo4j, using in-memory store", "err", err)
			backing = store.NewMemory()
		} else {
			logger.Info("Neo4j store initialized", "uri", cfg.Neo4j.URI)
			res.Neo4jClient = client
			backing = storageneo4j.NewUserDataStore(client)
		}
	} else {
		logger.Warn("NEO4J_URI not set, using in-memory store; data will not survive restarts")
		backing = store.NewMemory()
	}

	res.Users = store.NewUsers(backing, cfg.StoreNamespace)
	res.Analyses = analysis.NewService(res.Users, logger.Named("analysis"))
	res.Applications = application.NewService(res.Users, logger.Named("application"))

	if cfg.Gemini.APIKey != "" {
		generator, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Warn("failed to initialize Gemini, AI steps disabled", "err", err)
		} else {
			logger.Info("Gemini collaborator initialized", "model", generator.Model())
			res.Collaborator = gemini.NewCollaborator(generator, logger.Named("gemini"))
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI steps disabled")
	}

	if cfg.Sheets.CredentialsPath != "" {
		client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
		if err != nil {
			logger.Warn("failed to initialize Sheets client, board export disabled", "err", err)
		} else {
			logger.Info("Sheets board export initialized")
			res.Board = transfer.NewSheetsExporter(client, logger.Named("sheets"))
		}
	}

	return res
}

// Close releases held connections.
func (r *Resources) Close(ctx context.Context) error {
	if r.Neo4jClient != nil {
		return r.Neo4jClient.Close(ctx)
	}
	return nil
}

func (r *Resources) toolDeps(logger *logging.Logger) tools.Deps {
	deps := tools.Deps{
		Users:        r.Users,
		Analyses:     r.Analyses,
		Applications: r.Applications,
		Collaborator: r.Collaborator,
		Logger:       logger.Named("tools"),
	}
	if r.Board != nil {
		deps.Board = r.Board
	}
	return deps
}
