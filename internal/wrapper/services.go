package wrapper

import (
	"context"

	"cmis-go/internal/cmis"
)

// Versioning service

func (w *ServiceWrapper) CheckOut(ctx context.Context, repositoryID, objectID string) (*cmis.CheckOutResult, error) {
	if err := checkRepositoryID(repositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", objectID); err != nil {
		return nil, err
	}
	res, err := w.service.CheckOut(ctx, repositoryID, objectID)
	if err != nil {
		return nil, w.normalizeError("checkOut", err)
	}
	return res, nil
}

func (w *ServiceWrapper) CancelCheckOut(ctx context.Context, repositoryID, objectID string) error {
	if err := checkRepositoryID(repositoryID); err != nil {
		return err
	}
	if err := checkID("Object Id", objectID); err != nil {
		return err
	}
	if err := w.service.CancelCheckOut(ctx, repositoryID, objectID); err != nil {
		return w.normalizeError("cancelCheckOut", err)
	}
	return nil
}

func (w *ServiceWrapper) CheckIn(ctx context.Context, req *cmis.CheckInRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return "", err
	}
	r.Major = defaultTrue(r.Major)
	res, err := w.service.CheckIn(ctx, r)
	if err != nil {
		return "", w.normalizeError("checkIn", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetObjectOfLatestVersion(ctx context.Context, req *cmis.GetObjectOfLatestVersionRequest) (*cmis.ObjectData, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkIDs("Version Series Id", r.ObjectID, r.VersionSeriesID); err != nil {
		return nil, err
	}
	r.Major = defaultFalse(r.Major)
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	r.IncludeRelationships = defaultIncludeRelationships(r.IncludeRelationships)
	r.RenditionFilter = defaultRenditionFilter(r.RenditionFilter)
	r.IncludePolicyIDs = defaultFalse(r.IncludePolicyIDs)
	r.IncludeACL = defaultFalse(r.IncludeACL)
	res, err := w.service.GetObjectOfLatestVersion(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getObjectOfLatestVersion", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetPropertiesOfLatestVersion(ctx context.Context, req *cmis.GetPropertiesOfLatestVersionRequest) (*cmis.Properties, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkIDs("Version Series Id", r.ObjectID, r.VersionSeriesID); err != nil {
		return nil, err
	}
	r.Major = defaultFalse(r.Major)
	res, err := w.service.GetPropertiesOfLatestVersion(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getPropertiesOfLatestVersion", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetAllVersions(ctx context.Context, req *cmis.GetAllVersionsRequest) ([]*cmis.ObjectData, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkIDs("Version Series Id", r.ObjectID, r.VersionSeriesID); err != nil {
		return nil, err
	}
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	res, err := w.service.GetAllVersions(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getAllVersions", err)
	}
	return res, nil
}

// Discovery service

func (w *ServiceWrapper) Query(ctx context.Context, req *cmis.QueryRequest) (*cmis.ObjectList, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Statement", r.Statement); err != nil {
		return nil, err
	}
	r.SearchAllVersions = defaultFalse(r.SearchAllVersions)
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	r.IncludeRelationships = defaultIncludeRelationships(r.IncludeRelationships)
	r.RenditionFilter = defaultRenditionFilter(r.RenditionFilter)
	if err := paging(w.maxItems, &r.MaxItems, &r.SkipCount); err != nil {
		return nil, err
	}
	res, err := w.service.Query(ctx, r)
	if err != nil {
		return nil, w.normalizeError("query", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetContentChanges(ctx context.Context, req *cmis.GetContentChangesRequest) (*cmis.ContentChanges, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	r.IncludeProperties = defaultFalse(r.IncludeProperties)
	r.IncludePolicyIDs = defaultFalse(r.IncludePolicyIDs)
	r.IncludeACL = defaultFalse(r.IncludeACL)
	var err error
	if r.MaxItems, err = w.maxItems(r.MaxItems); err != nil {
		return nil, err
	}
	res, err := w.service.GetContentChanges(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getContentChanges", err)
	}
	return res, nil
}

// Multi-filing service

func (w *ServiceWrapper) AddObjectToFolder(ctx context.Context, req *cmis.AddObjectToFolderRequest) error {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return err
	}
	if err := checkID("Folder Id", r.FolderID); err != nil {
		return err
	}
	r.AllVersions = defaultTrue(r.AllVersions)
	if err := w.service.AddObjectToFolder(ctx, r); err != nil {
		return w.normalizeError("addObjectToFolder", err)
	}
	return nil
}

func (w *ServiceWrapper) RemoveObjectFromFolder(ctx context.Context, req *cmis.RemoveObjectFromFolderRequest) error {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return err
	}
	if err := w.service.RemoveObjectFromFolder(ctx, r); err != nil {
		return w.normalizeError("removeObjectFromFolder", err)
	}
	return nil
}

// Relationship service

func (w *ServiceWrapper) GetObjectRelationships(ctx context.Context, req *cmis.GetObjectRelationshipsRequest) (*cmis.ObjectList, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	r.IncludeSubRelationshipTypes = defaultFalse(r.IncludeSubRelationshipTypes)
	r.RelationshipDirection = defaultRelationshipDirection(r.RelationshipDirection)
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	if err := paging(w.maxItems, &r.MaxItems, &r.SkipCount); err != nil {
		return nil, err
	}
	res, err := w.service.GetObjectRelationships(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getObjectRelationships", err)
	}
	return res, nil
}

// ACL service

func (w *ServiceWrapper) GetACL(ctx context.Context, req *cmis.GetACLRequest) (*cmis.ACL, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	r.OnlyBasicPermissions = defaultTrue(r.OnlyBasicPermissions)
	res, err := w.service.GetACL(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getAcl", err)
	}
	return res, nil
}

func (w *ServiceWrapper) ApplyACL(ctx context.Context, req *cmis.ApplyACLRequest) (*cmis.ACL, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	r.ACLPropagation = defaultACLPropagation(r.ACLPropagation)
	res, err := w.service.ApplyACL(ctx, r)
	if err != nil {
		return nil, w.normalizeError("applyAcl", err)
	}
	return res, nil
}

func (w *ServiceWrapper) SetACL(ctx context.Context, req *cmis.SetACLRequest) (*cmis.ACL, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	if r.ACEs == nil {
		return nil, cmis.NewInvalidArgumentError("ACEs must be set!")
	}
	r.ACLPropagation = defaultACLPropagation(r.ACLPropagation)
	res, err := w.service.SetACL(ctx, r)
	if err != nil {
		return nil, w.normalizeError("setAcl", err)
	}
	return res, nil
}

// Policy service

func checkPolicyRequest(r *cmis.PolicyRequest) error {
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return err
	}
	if err := checkID("Policy Id", r.PolicyID); err != nil {
		return err
	}
	return checkID("Object Id", r.ObjectID)
}

func (w *ServiceWrapper) ApplyPolicy(ctx context.Context, req *cmis.PolicyRequest) error {
	r := copyRequest(req)
	if err := checkPolicyRequest(r); err != nil {
		return err
	}
	if err := w.service.ApplyPolicy(ctx, r); err != nil {
		return w.normalizeError("applyPolicy", err)
	}
	return nil
}

func (w *ServiceWrapper) RemovePolicy(ctx context.Context, req *cmis.PolicyRequest) error {
	r := copyRequest(req)
	if err := checkPolicyRequest(r); err != nil {
		return err
	}
	if err := w.service.RemovePolicy(ctx, r); err != nil {
		return w.normalizeError("removePolicy", err)
	}
	return nil
}

func (w *ServiceWrapper) GetAppliedPolicies(ctx context.Context, req *cmis.GetAppliedPoliciesRequest) ([]*cmis.ObjectData, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	res, err := w.service.GetAppliedPolicies(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getAppliedPolicies", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetObjectInfo(ctx context.Context, repositoryID, objectID string) (*cmis.ObjectInfo, error) {
	if err := checkRepositoryID(repositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", objectID); err != nil {
		return nil, err
	}
	res, err := w.service.GetObjectInfo(ctx, repositoryID, objectID)
	if err != nil {
		return nil, w.normalizeError("getObjectInfo", err)
	}
	return res, nil
}

// Close closes the wrapped service.
func (w *ServiceWrapper) Close() error {
	return w.service.Close()
}
