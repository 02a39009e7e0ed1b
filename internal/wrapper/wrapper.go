// Package wrapper validates and defaults the parameters of every CMIS
// service operation before handing the call to a repository implementation.
package wrapper

import (
	"context"

	"cmis-go/internal/cmis"
)

// Defaults are the values used when a caller leaves maxItems or depth unset.
type Defaults struct {
	TypesMaxItems int64
	TypesDepth    int64
	MaxItems      int64
	Depth         int64
}

// DefaultDefaults returns the stock defaults: 1000 types or 100000 objects
// per page and unlimited depth.
func DefaultDefaults() Defaults {
	return Defaults{
		TypesMaxItems: 1000,
		TypesDepth:    -1,
		MaxItems:      100000,
		Depth:         -1,
	}
}

// ServiceWrapper implements cmis.Service on top of another cmis.Service.
// Every operation checks the required parameters, fills in the defaults the
// CMIS specification prescribes, and delegates. Errors from the wrapped
// service that are not *cmis.Error are logged and turned into runtime errors.
//
// A ServiceWrapper holds no mutable state and is safe for concurrent use as
// long as the wrapped service is.
type ServiceWrapper struct {
	service  cmis.Service
	defaults Defaults
	logger   cmis.Logger
}

var _ cmis.Service = (*ServiceWrapper)(nil)

// New wraps service. A nil logger discards output.
func New(service cmis.Service, defaults Defaults, logger cmis.Logger) (*ServiceWrapper, error) {
	if service == nil {
		return nil, cmis.NewInvalidArgumentError("Service must be set!")
	}
	if logger == nil {
		logger = cmis.NewNopLogger()
	}
	return &ServiceWrapper{
		service:  service,
		defaults: defaults,
		logger:   logger,
	}, nil
}

// Wrapped returns the wrapped service.
func (w *ServiceWrapper) Wrapped() cmis.Service {
	return w.service
}

func (w *ServiceWrapper) Defaults() Defaults {
	return w.defaults
}

// normalizeError makes sure callers only ever see *cmis.Error values.
func (w *ServiceWrapper) normalizeError(op string, err error) error {
	if err == nil {
		return cmis.NewRuntimeError("Unknown exception!", nil)
	}
	if cerr, ok := cmis.AsError(err); ok {
		return cerr
	}
	w.logger.Warn("service returned a non-CMIS error", "operation", op, "error", err.Error())
	return cmis.NewRuntimeError(err.Error(), err)
}

func (w *ServiceWrapper) typesMaxItems(v *int64) (*int64, error) {
	return maxItemsOrDefault(v, w.defaults.TypesMaxItems)
}

func (w *ServiceWrapper) typesDepth(v *int64) (*int64, error) {
	return depthOrDefault(v, w.defaults.TypesDepth)
}

func (w *ServiceWrapper) maxItems(v *int64) (*int64, error) {
	return maxItemsOrDefault(v, w.defaults.MaxItems)
}

func (w *ServiceWrapper) depth(v *int64) (*int64, error) {
	return depthOrDefault(v, w.defaults.Depth)
}

// paging applies maxItems and skipCount defaults in place.
func paging(maxItems func(*int64) (*int64, error), mi, sc **int64) error {
	var err error
	if *mi, err = maxItems(*mi); err != nil {
		return err
	}
	if *sc, err = skipCount(*sc); err != nil {
		return err
	}
	return nil
}

// Repository service

func (w *ServiceWrapper) GetRepositoryInfos(ctx context.Context) ([]*cmis.RepositoryInfo, error) {
	res, err := w.service.GetRepositoryInfos(ctx)
	if err != nil {
		return nil, w.normalizeError("getRepositoryInfos", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetRepositoryInfo(ctx context.Context, repositoryID string) (*cmis.RepositoryInfo, error) {
	if err := checkRepositoryID(repositoryID); err != nil {
		return nil, err
	}
	res, err := w.service.GetRepositoryInfo(ctx, repositoryID)
	if err != nil {
		return nil, w.normalizeError("getRepositoryInfo", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetTypeChildren(ctx context.Context, req *cmis.GetTypeChildrenRequest) (*cmis.TypeDefinitionList, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	r.IncludePropertyDefinitions = defaultFalse(r.IncludePropertyDefinitions)
	if err := paging(w.typesMaxItems, &r.MaxItems, &r.SkipCount); err != nil {
		return nil, err
	}
	res, err := w.service.GetTypeChildren(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getTypeChildren", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetTypeDescendants(ctx context.Context, req *cmis.GetTypeDescendantsRequest) ([]*cmis.TypeDefinitionContainer, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	var err error
	if r.Depth, err = w.typesDepth(r.Depth); err != nil {
		return nil, err
	}
	r.IncludePropertyDefinitions = defaultFalse(r.IncludePropertyDefinitions)
	res, err := w.service.GetTypeDescendants(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getTypeDescendants", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetTypeDefinition(ctx context.Context, repositoryID, typeID string) (*cmis.TypeDefinition, error) {
	if err := checkRepositoryID(repositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Type Id", typeID); err != nil {
		return nil, err
	}
	res, err := w.service.GetTypeDefinition(ctx, repositoryID, typeID)
	if err != nil {
		return nil, w.normalizeError("getTypeDefinition", err)
	}
	return res, nil
}

func checkTypeDefinition(td *cmis.TypeDefinition) error {
	if td == nil {
		return cmis.NewInvalidArgumentError("Type definition must be set!")
	}
	return nil
}

func (w *ServiceWrapper) CreateType(ctx context.Context, repositoryID string, td *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	if err := checkRepositoryID(repositoryID); err != nil {
		return nil, err
	}
	if err := checkTypeDefinition(td); err != nil {
		return nil, err
	}
	res, err := w.service.CreateType(ctx, repositoryID, td)
	if err != nil {
		return nil, w.normalizeError("createType", err)
	}
	return res, nil
}

func (w *ServiceWrapper) UpdateType(ctx context.Context, repositoryID string, td *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	if err := checkRepositoryID(repositoryID); err != nil {
		return nil, err
	}
	if err := checkTypeDefinition(td); err != nil {
		return nil, err
	}
	res, err := w.service.UpdateType(ctx, repositoryID, td)
	if err != nil {
		return nil, w.normalizeError("updateType", err)
	}
	return res, nil
}

func (w *ServiceWrapper) DeleteType(ctx context.Context, repositoryID, typeID string) error {
	if err := checkRepositoryID(repositoryID); err != nil {
		return err
	}
	if err := checkID("Type Id", typeID); err != nil {
		return err
	}
	if err := w.service.DeleteType(ctx, repositoryID, typeID); err != nil {
		return w.normalizeError("deleteType", err)
	}
	return nil
}

// Navigation service

func (w *ServiceWrapper) GetChildren(ctx context.Context, req *cmis.GetChildrenRequest) (*cmis.ObjectInFolderList, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Folder Id", r.FolderID); err != nil {
		return nil, err
	}
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	r.IncludeRelationships = defaultIncludeRelationships(r.IncludeRelationships)
	r.RenditionFilter = defaultRenditionFilter(r.RenditionFilter)
	r.IncludePathSegment = defaultFalse(r.IncludePathSegment)
	if err := paging(w.maxItems, &r.MaxItems, &r.SkipCount); err != nil {
		return nil, err
	}
	res, err := w.service.GetChildren(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getChildren", err)
	}
	return res, nil
}

func (w *ServiceWrapper) prepareDescendants(req *cmis.GetDescendantsRequest) (*cmis.GetDescendantsRequest, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Folder Id", r.FolderID); err != nil {
		return nil, err
	}
	var err error
	if r.Depth, err = w.depth(r.Depth); err != nil {
		return nil, err
	}
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	r.IncludeRelationships = defaultIncludeRelationships(r.IncludeRelationships)
	r.RenditionFilter = defaultRenditionFilter(r.RenditionFilter)
	r.IncludePathSegment = defaultFalse(r.IncludePathSegment)
	return r, nil
}

func (w *ServiceWrapper) GetDescendants(ctx context.Context, req *cmis.GetDescendantsRequest) ([]*cmis.ObjectInFolderContainer, error) {
	r, err := w.prepareDescendants(req)
	if err != nil {
		return nil, err
	}
	res, err := w.service.GetDescendants(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getDescendants", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetFolderTree(ctx context.Context, req *cmis.GetDescendantsRequest) ([]*cmis.ObjectInFolderContainer, error) {
	r, err := w.prepareDescendants(req)
	if err != nil {
		return nil, err
	}
	res, err := w.service.GetFolderTree(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getFolderTree", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetObjectParents(ctx context.Context, req *cmis.GetObjectParentsRequest) ([]*cmis.ObjectParentData, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	r.IncludeRelationships = defaultIncludeRelationships(r.IncludeRelationships)
	r.RenditionFilter = defaultRenditionFilter(r.RenditionFilter)
	r.IncludeRelativePathSegment = defaultFalse(r.IncludeRelativePathSegment)
	res, err := w.service.GetObjectParents(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getObjectParents", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetFolderParent(ctx context.Context, req *cmis.GetFolderParentRequest) (*cmis.ObjectData, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Folder Id", r.FolderID); err != nil {
		return nil, err
	}
	res, err := w.service.GetFolderParent(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getFolderParent", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetCheckedOutDocs(ctx context.Context, req *cmis.GetCheckedOutDocsRequest) (*cmis.ObjectList, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	r.IncludeRelationships = defaultIncludeRelationships(r.IncludeRelationships)
	r.RenditionFilter = defaultRenditionFilter(r.RenditionFilter)
	if err := paging(w.maxItems, &r.MaxItems, &r.SkipCount); err != nil {
		return nil, err
	}
	res, err := w.service.GetCheckedOutDocs(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getCheckedOutDocs", err)
	}
	return res, nil
}
