// Package typeservice serves the repository service group of a single
// repository from a type manager.
package typeservice

import (
	"context"

	"cmis-go/internal/cmis"
	"cmis-go/internal/typemanager"
	"cmis-go/internal/validator"
)

// Service implements the repository operations of cmis.Service. Every other
// operation reports notSupported.
type Service struct {
	cmis.UnsupportedService

	info   cmis.RepositoryInfo
	types  *typemanager.Manager
	logger cmis.Logger
}

var _ cmis.Service = (*Service)(nil)

// New creates a Service for the repository described by info. The CMIS
// version of info is taken from the type manager.
func New(info cmis.RepositoryInfo, types *typemanager.Manager, logger cmis.Logger) *Service {
	if logger == nil {
		logger = cmis.NewNopLogger()
	}
	info.CMISVersion = types.Version()
	return &Service{
		info:   info,
		types:  types,
		logger: logger,
	}
}

// Types returns the type manager backing the service.
func (s *Service) Types() *typemanager.Manager {
	return s.types
}

func (s *Service) checkRepository(repositoryID string) error {
	if repositoryID != s.info.ID {
		return cmis.NewObjectNotFoundError("Unknown repository '%s'!", repositoryID)
	}
	return nil
}

func (s *Service) GetRepositoryInfos(_ context.Context) ([]*cmis.RepositoryInfo, error) {
	info := s.info
	return []*cmis.RepositoryInfo{&info}, nil
}

func (s *Service) GetRepositoryInfo(_ context.Context, repositoryID string) (*cmis.RepositoryInfo, error) {
	if err := s.checkRepository(repositoryID); err != nil {
		return nil, err
	}
	info := s.info
	return &info, nil
}

func (s *Service) GetTypeChildren(_ context.Context, req *cmis.GetTypeChildrenRequest) (*cmis.TypeDefinitionList, error) {
	if err := s.checkRepository(req.RepositoryID); err != nil {
		return nil, err
	}
	return s.types.Factory().CreateTypeDefinitionList(s.types, req.TypeID, boolValue(req.IncludePropertyDefinitions), req.MaxItems, req.SkipCount)
}

func (s *Service) GetTypeDescendants(_ context.Context, req *cmis.GetTypeDescendantsRequest) ([]*cmis.TypeDefinitionContainer, error) {
	if err := s.checkRepository(req.RepositoryID); err != nil {
		return nil, err
	}
	return s.types.Factory().CreateTypeDescendants(s.types, req.TypeID, req.Depth, boolValue(req.IncludePropertyDefinitions))
}

func (s *Service) GetTypeDefinition(_ context.Context, repositoryID, typeID string) (*cmis.TypeDefinition, error) {
	if err := s.checkRepository(repositoryID); err != nil {
		return nil, err
	}
	tc := s.types.GetTypeByID(typeID)
	if tc == nil {
		return nil, cmis.NewObjectNotFoundError("Type '%s' does not exist!", typeID)
	}
	return s.types.Factory().CopyForVersion(tc.TypeDefinition, true, s.types.Version())
}

// CreateType adds a custom type. Type mutability is a CMIS 1.1 feature.
func (s *Service) CreateType(ctx context.Context, repositoryID string, td *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	if err := s.checkMutable(repositoryID); err != nil {
		return nil, err
	}
	return s.types.AddTypeDefinition(ctx, td)
}

func (s *Service) UpdateType(ctx context.Context, repositoryID string, td *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	if err := s.checkMutable(repositoryID); err != nil {
		return nil, err
	}
	return s.types.UpdateTypeDefinition(ctx, td)
}

func (s *Service) DeleteType(ctx context.Context, repositoryID, typeID string) error {
	if err := s.checkMutable(repositoryID); err != nil {
		return err
	}
	return s.types.DeleteTypeDefinition(ctx, typeID)
}

func (s *Service) checkMutable(repositoryID string) error {
	if err := s.checkRepository(repositoryID); err != nil {
		return err
	}
	if s.types.Version() == cmis.Version10 {
		return cmis.NewNotSupportedError("Type mutability is not supported by CMIS 1.0!")
	}
	return nil
}

// ValidateProperties checks props against the object type and secondary
// types they name.
func (s *Service) ValidateProperties(_ context.Context, repositoryID string, props *cmis.Properties, checkMandatory bool) error {
	if err := s.checkRepository(repositoryID); err != nil {
		return err
	}
	return validator.ValidateObjectProperties(s.types, props, checkMandatory)
}

// Close is a no-op; the type store is owned by the caller.
func (s *Service) Close() error {
	s.logger.Debug("type service closed", "repository", s.info.ID)
	return nil
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
