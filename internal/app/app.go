package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"cmis-go/internal/archive"
	"cmis-go/internal/cmis"
	"cmis-go/internal/config"
	"cmis-go/internal/database"
	"cmis-go/internal/encryption"
	"cmis-go/internal/typedef"
	"cmis-go/internal/typefile"
	"cmis-go/internal/typemanager"
	"cmis-go/internal/typeservice"
	"cmis-go/internal/wrapper"
)

// App is the application layer between the CLI and the CMIS services.
// It constructs all dependencies from config, exposes high-level operations
// that accept file paths and type ids, and snapshots the custom types to an
// archive when a mutating command closes.
type App struct {
	cfg      *config.Config
	op       *Operation
	logger   cmis.Logger
	logFile  *os.File
	clock    cmis.Clock
	ids      cmis.IDGenerator
	store    *database.SQLiteStore
	types    *typemanager.Manager
	service  *typeservice.Service
	wrapper  *wrapper.ServiceWrapper
	archives map[string]archive.Archive

	passphrase encryption.PassphraseFunc
	sealer     archive.Sealer
}

// Option configures an App.
type Option func(*App)

// WithClock replaces the wall clock used for operation ids and snapshots.
func WithClock(c cmis.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithIDGenerator replaces the snapshot id generator.
func WithIDGenerator(g cmis.IDGenerator) Option {
	return func(a *App) { a.ids = g }
}

// WithArchive registers an archive under its name, taking precedence over
// the archive config of the same name.
func WithArchive(ar archive.Archive) Option {
	return func(a *App) { a.archives[ar.Name()] = ar }
}

// WithPassphrase sets the function asked for the passphrase when an
// encrypted snapshot has to be read.
func WithPassphrase(fn encryption.PassphraseFunc) Option {
	return func(a *App) { a.passphrase = fn }
}

// NewApp creates a fully wired App from the given config.
// command identifies the CLI command being run (e.g. "CreateTypes", "ListTypes").
// verbose sends debug output to stderr. The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, command string, verbose bool, opts ...Option) (*App, error) {
	a := &App{
		cfg:      cfg,
		clock:    cmis.RealClock{},
		ids:      cmis.UUIDGenerator{},
		archives: make(map[string]archive.Archive),
	}
	for _, o := range opts {
		o(a)
	}

	if err := cfg.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid defaults: %w", err)
	}
	version, err := cmis.ParseVersion(cfg.CMISVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid cmis_version: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	if enc != nil {
		if !enc.IsConfigured() {
			return nil, fmt.Errorf("encryption keys missing: run cmis config init")
		}
		a.sealer = encryption.NewSealer(enc, a.passphrase)
	}

	a.op = NewOperation(command, "", a.clock.Now())
	logger, logFile, err := newLogger(cfg.LogDir, a.op.ID, verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	a.logger = &slogAdapter{l: logger}
	a.logFile = logFile

	store, err := database.NewTypeStoreFromConfig(cfg.TypeStore, cfg.RepositoryID, a.clock)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating type store: %w", err)
	}
	if err := store.CheckMigrations(); err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("type store schema out of date: %w", err)
	}
	a.store = store

	factory := typedef.New(typedef.WithOptions(factoryOptions(cfg.Factory)))
	types, err := typemanager.New(factory, version, store, a.logger)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("creating type manager: %w", err)
	}
	if _, err := types.Load(ctx); err != nil {
		a.closeResources()
		return nil, err
	}
	a.types = types

	if err := a.loadTypeFiles(ctx); err != nil {
		a.closeResources()
		return nil, err
	}

	a.service = typeservice.New(cmis.RepositoryInfo{
		ID:          cfg.RepositoryID,
		Name:        cfg.RepositoryName,
		ProductName: "cmis-go",
	}, types, a.logger)

	w, err := wrapper.New(a.service, wrapper.Defaults{
		TypesMaxItems: cfg.Defaults.TypesMaxItems,
		TypesDepth:    cfg.Defaults.TypesDepth,
		MaxItems:      cfg.Defaults.MaxItems,
		Depth:         cfg.Defaults.Depth,
	}, a.logger)
	if err != nil {
		a.closeResources()
		return nil, fmt.Errorf("creating service wrapper: %w", err)
	}
	a.wrapper = w

	a.logger.Debug("app ready", "command", command, "repository", cfg.RepositoryID, "version", version)
	return a, nil
}

func factoryOptions(fc config.FactoryConfig) typedef.Options {
	return typedef.Options{
		Namespace:                fc.Namespace,
		ControllableACL:          fc.ControllableACL,
		ControllablePolicy:       fc.ControllablePolicy,
		Queryable:                fc.Queryable,
		FulltextIndexed:          fc.FulltextIndexed,
		IncludedInSupertypeQuery: fc.IncludedInSupertypeQuery,
		TypeMutability: cmis.TypeMutability{
			CanCreate: fc.TypeMutability.CanCreate,
			CanUpdate: fc.TypeMutability.CanUpdate,
			CanDelete: fc.TypeMutability.CanDelete,
		},
	}
}

// loadTypeFiles adds the types declared in the configured type files.
// Types that already exist, typically because they were loaded from the
// store, are skipped.
func (a *App) loadTypeFiles(ctx context.Context) error {
	var paths []string
	for _, pattern := range a.cfg.TypeFiles {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("bad type_files pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	for _, p := range paths {
		doc, err := typefile.ReadFile(p)
		if err != nil {
			return err
		}
		built, err := doc.Build(a.types, a.types.Factory())
		if err != nil {
			return fmt.Errorf("building types from %s: %w", p, err)
		}
		added := 0
		for _, td := range built {
			if a.types.GetTypeByID(td.ID) != nil {
				continue
			}
			if _, err := a.types.AddTypeDefinition(ctx, td); err != nil {
				return fmt.Errorf("adding type %s from %s: %w", td.ID, p, err)
			}
			added++
		}
		a.logger.Debug("loaded type file", "path", p, "added", added)
	}
	return nil
}

// InitRepository prepares the storage a config refers to: it generates the
// encryption keys when encryption is on, creates the type store schema and
// checks that every archive is usable. passphrase is only called for new keys.
func InitRepository(ctx context.Context, cfg *config.Config, passphrase encryption.PassphraseFunc) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc != nil && !enc.IsConfigured() {
		if passphrase == nil {
			return fmt.Errorf("a passphrase is required to create encryption keys")
		}
		p, err := passphrase()
		if err != nil {
			return fmt.Errorf("reading passphrase: %w", err)
		}
		if err := enc.Setup(p); err != nil {
			return fmt.Errorf("setting up encryption: %w", err)
		}
	}

	store, err := database.NewTypeStoreFromConfig(cfg.TypeStore, cfg.RepositoryID, cmis.RealClock{})
	if err != nil {
		return fmt.Errorf("creating type store: %w", err)
	}
	defer store.Close()
	if err := store.MigrateUp(); err != nil {
		return fmt.Errorf("migrating type store: %w", err)
	}

	for _, ac := range cfg.Archives {
		ar, err := archive.NewArchiveFromConfig(ctx, ac)
		if err != nil {
			return fmt.Errorf("creating archive %s: %w", ac.Name, err)
		}
		if err := ar.ValidateSetup(ctx); err != nil {
			return fmt.Errorf("validating archive %s: %w", ac.Name, err)
		}
	}
	return nil
}

// Operation returns the operation this app runs.
func (a *App) Operation() *Operation {
	return a.op
}

// Service returns the validating service the app exposes.
func (a *App) Service() cmis.Service {
	return a.wrapper
}

// RepositoryInfo returns the info of the configured repository.
func (a *App) RepositoryInfo(ctx context.Context) (*cmis.RepositoryInfo, error) {
	return a.wrapper.GetRepositoryInfo(ctx, a.cfg.RepositoryID)
}

// TypeDescendants returns the type tree below typeID, or the whole type tree
// when typeID is empty. A depth of nil uses the configured default.
func (a *App) TypeDescendants(ctx context.Context, typeID string, depth *int64, includePropertyDefinitions bool) ([]*cmis.TypeDefinitionContainer, error) {
	return a.wrapper.GetTypeDescendants(ctx, &cmis.GetTypeDescendantsRequest{
		RepositoryID:               a.cfg.RepositoryID,
		TypeID:                     typeID,
		Depth:                      depth,
		IncludePropertyDefinitions: &includePropertyDefinitions,
	})
}

// TypeChildren returns one page of the direct children of typeID, or of the
// base types when typeID is empty.
func (a *App) TypeChildren(ctx context.Context, typeID string, maxItems, skipCount *int64) (*cmis.TypeDefinitionList, error) {
	includePropertyDefinitions := false
	return a.wrapper.GetTypeChildren(ctx, &cmis.GetTypeChildrenRequest{
		RepositoryID:               a.cfg.RepositoryID,
		TypeID:                     typeID,
		IncludePropertyDefinitions: &includePropertyDefinitions,
		MaxItems:                   maxItems,
		SkipCount:                  skipCount,
	})
}

// GetType returns the definition of typeID including its property definitions.
func (a *App) GetType(ctx context.Context, typeID string) (*cmis.TypeDefinition, error) {
	return a.wrapper.GetTypeDefinition(ctx, a.cfg.RepositoryID, typeID)
}

// CreateTypes creates every type declared in the type document at path.
func (a *App) CreateTypes(ctx context.Context, path string) ([]*cmis.TypeDefinition, error) {
	return a.applyTypeFile(ctx, path, a.wrapper.CreateType)
}

// UpdateTypes replaces the types declared in the type document at path.
func (a *App) UpdateTypes(ctx context.Context, path string) ([]*cmis.TypeDefinition, error) {
	return a.applyTypeFile(ctx, path, a.wrapper.UpdateType)
}

func (a *App) applyTypeFile(ctx context.Context, path string, apply func(context.Context, string, *cmis.TypeDefinition) (*cmis.TypeDefinition, error)) ([]*cmis.TypeDefinition, error) {
	a.op.Parameters = path
	a.op.MarkMutating()

	doc, err := typefile.ReadFile(path)
	if err != nil {
		return nil, a.fail(err)
	}
	built, err := doc.Build(a.types, a.types.Factory())
	if err != nil {
		return nil, a.fail(fmt.Errorf("building types from %s: %w", path, err))
	}

	var out []*cmis.TypeDefinition
	for _, td := range built {
		res, err := apply(ctx, a.cfg.RepositoryID, td)
		if err != nil {
			return out, a.fail(fmt.Errorf("type %s: %w", td.ID, err))
		}
		out = append(out, res)
	}
	return out, nil
}

// DeleteType deletes a custom type without subtypes.
func (a *App) DeleteType(ctx context.Context, typeID string) error {
	a.op.Parameters = typeID
	a.op.MarkMutating()
	if err := a.wrapper.DeleteType(ctx, a.cfg.RepositoryID, typeID); err != nil {
		return a.fail(err)
	}
	return nil
}

// ExportTypes writes the custom types as a type document to w.
func (a *App) ExportTypes(w io.Writer) error {
	return typefile.FromTypeDefinitions(a.types.CustomTypes()).Encode(w)
}

// History returns the most recent type changes, newest first.
func (a *App) History(ctx context.Context, limit int) ([]*cmis.TypeChange, error) {
	return a.store.ListTypeChanges(ctx, limit)
}

// ValidateProperties checks the property set at path against the types it
// names. A non-empty typeID replaces the object type id of the set. The
// returned error is a *cmis.Error describing the first problem.
func (a *App) ValidateProperties(ctx context.Context, path, typeID string, checkMandatory bool) error {
	a.op.Parameters = path
	ps, err := typefile.ReadPropertiesFile(path)
	if err != nil {
		return err
	}
	if typeID != "" {
		ps[cmis.PropObjectTypeID] = typeID
	}
	props, err := ps.Build(a.types)
	if err != nil {
		return err
	}
	return a.service.ValidateProperties(ctx, a.cfg.RepositoryID, props, checkMandatory)
}

// archive returns the named archive, or the first configured one when name
// is empty.
func (a *App) archive(ctx context.Context, name string) (archive.Archive, error) {
	if name == "" {
		name = a.defaultArchiveName()
	}
	ar, ok := a.archives[name]
	if !ok {
		ac, err := archive.FindConfig(a.cfg.Archives, name)
		if err != nil {
			return nil, err
		}
		ar, err = archive.NewArchiveFromConfig(ctx, ac)
		if err != nil {
			return nil, fmt.Errorf("creating archive %s: %w", ac.Name, err)
		}
		a.archives[ac.Name] = ar
	}
	if a.sealer != nil {
		ar.SetSealer(a.sealer)
	}
	return ar, nil
}

// PushSnapshot stores the current custom types in the named archive.
func (a *App) PushSnapshot(ctx context.Context, archiveName string) (*archive.Snapshot, error) {
	ar, err := a.archive(ctx, archiveName)
	if err != nil {
		return nil, err
	}
	s := archive.NewSnapshot(a.cfg.RepositoryID, a.types.Version(), a.types.CustomTypes(), a.clock, a.ids)
	if err := ar.PutSnapshot(ctx, s); err != nil {
		return nil, fmt.Errorf("pushing snapshot to %s: %w", ar.Name(), err)
	}
	a.logger.Info("snapshot pushed", "archive", ar.Name(), "snapshot", s.ID, "types", len(s.Types))
	return s, nil
}

// ListSnapshots returns the snapshots of the repository in the named archive.
func (a *App) ListSnapshots(ctx context.Context, archiveName string) ([]archive.SnapshotInfo, error) {
	ar, err := a.archive(ctx, archiveName)
	if err != nil {
		return nil, err
	}
	return ar.ListSnapshots(ctx, a.cfg.RepositoryID)
}

// RestoreSnapshot adds the types of a snapshot that are not defined yet.
// An empty id restores the latest snapshot. Existing types are left alone,
// so restoring into a fresh repository recreates the archived type system.
func (a *App) RestoreSnapshot(ctx context.Context, archiveName, id string) (added, skipped int, err error) {
	a.op.Parameters = id
	ar, err := a.archive(ctx, archiveName)
	if err != nil {
		return 0, 0, err
	}

	var s *archive.Snapshot
	if id == "" {
		s, err = ar.LatestSnapshot(ctx, a.cfg.RepositoryID)
	} else {
		s, err = ar.GetSnapshot(ctx, a.cfg.RepositoryID, id)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("fetching snapshot from %s: %w", ar.Name(), err)
	}
	if s.CMISVersion != a.types.Version() {
		return 0, 0, fmt.Errorf("snapshot %s is for CMIS %s, repository uses %s", s.ID, s.CMISVersion, a.types.Version())
	}

	for _, td := range s.Types {
		if a.types.GetTypeByID(td.ID) != nil {
			skipped++
			continue
		}
		if _, err := a.types.AddTypeDefinition(ctx, td); err != nil {
			return added, skipped, a.fail(fmt.Errorf("restoring type %s: %w", td.ID, err))
		}
		a.op.MarkMutating()
		added++
	}
	a.logger.Info("snapshot restored", "archive", ar.Name(), "snapshot", s.ID, "added", added, "skipped", skipped)
	return added, skipped, nil
}

func (a *App) fail(err error) error {
	a.op.Fail()
	return err
}

// Close finalizes the operation and closes all resources.
// A successful mutating operation pushes a snapshot of the custom types to
// the first configured archive before the store is closed.
func (a *App) Close() error {
	var firstErr error

	if a.op.Mutating && a.op.Succeeded() && (len(a.cfg.Archives) > 0 || len(a.archives) > 0) {
		if _, err := a.PushSnapshot(context.Background(), ""); err != nil {
			a.logger.Error("snapshot after mutation failed", "error", err)
			firstErr = err
		}
	}
	a.logger.Debug("operation finished", "command", a.op.Command, "status", a.op.Status)

	if a.wrapper != nil {
		if err := a.wrapper.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing service: %w", err)
		}
	}
	if err := a.closeResources(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// defaultArchiveName returns the first configured archive, falling back to
// the alphabetically first registered one.
func (a *App) defaultArchiveName() string {
	if len(a.cfg.Archives) > 0 {
		return a.cfg.Archives[0].Name
	}
	names := make([]string, 0, len(a.archives))
	for n := range a.archives {
		names = append(names, n)
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

func (a *App) closeResources() error {
	var firstErr error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			firstErr = fmt.Errorf("closing type store: %w", err)
		}
		a.store = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
	return firstErr
}
