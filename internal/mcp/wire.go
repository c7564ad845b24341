//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/positionfit/positionfit/internal/analysis"
	"github.com/positionfit/positionfit/internal/application"
	"github.com/positionfit/positionfit/internal/config"
	"github.com/positionfit/positionfit/internal/store"
	storageneo4j "github.com/positionfit/positionfit/internal/storage/neo4j"
	"github.com/positionfit/positionfit/internal/transfer"
	"github.com/positionfit/positionfit/pkg/logging"
	pkgneo4j "github.com/positionfit/positionfit/pkg/neo4j"
	"github.com/positionfit/positionfit/pkg/sheets"
)

// InitializeResources builds the full resource graph for a deployment with
// every integration configured. BuildResources remains the runtime path
// with per-integration fallbacks.
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Infrastructure - Neo4j
		provideNeo4jConfig,
		pkgneo4j.NewClient,

		// Infrastructure - Sheets
		provideSheetsConfig,
		sheets.NewClient,

		// Store
		storageneo4j.NewUserDataStore,
		wire.Bind(new(store.Store), new(*storageneo4j.UserDataStore)),
		provideUsers,

		// Services
		analysis.NewService,
		application.NewService,
		provideBoard,

		newResources,
	)

	return &Resources{}, nil
}

func provideNeo4jConfig(cfg config.Config) pkgneo4j.Config {
	return pkgneo4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	}
}

func provideSheetsConfig(cfg config.Config) sheets.Config {
	return sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath}
}

func provideUsers(s store.Store, cfg config.Config) *store.Users {
	return store.NewUsers(s, cfg.StoreNamespace)
}

func provideBoard(client *sheets.Client, logger *logging.Logger) *transfer.SheetsExporter {
	return transfer.NewSheetsExporter(client, logger)
}

func newResources(
	users *store.Users,
	analyses *analysis.Service,
	applications *application.Service,
	board *transfer.SheetsExporter,
	client *pkgneo4j.Client,
) *Resources {
	return &Resources{
		Users:        users,
		Analyses:     analyses,
		Applications: applications,
		Board:        board,
		Neo4jClient:  client,
	}
}
