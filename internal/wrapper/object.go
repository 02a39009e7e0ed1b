package wrapper

import (
	"context"

	"cmis-go/internal/cmis"
)

// Object service

func (w *ServiceWrapper) Create(ctx context.Context, req *cmis.CreateRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkObjectTypeID(r.Properties); err != nil {
		return "", err
	}
	res, err := w.service.Create(ctx, r)
	if err != nil {
		return "", w.normalizeError("create", err)
	}
	return res, nil
}

func (w *ServiceWrapper) CreateDocument(ctx context.Context, req *cmis.CreateDocumentRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkObjectTypeID(r.Properties); err != nil {
		return "", err
	}
	r.VersioningState = defaultVersioningState(r.VersioningState)
	res, err := w.service.CreateDocument(ctx, r)
	if err != nil {
		return "", w.normalizeError("createDocument", err)
	}
	return res, nil
}

func (w *ServiceWrapper) CreateDocumentFromSource(ctx context.Context, req *cmis.CreateDocumentFromSourceRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkID("Source Id", r.SourceID); err != nil {
		return "", err
	}
	r.VersioningState = defaultVersioningState(r.VersioningState)
	res, err := w.service.CreateDocumentFromSource(ctx, r)
	if err != nil {
		return "", w.normalizeError("createDocumentFromSource", err)
	}
	return res, nil
}

func (w *ServiceWrapper) CreateFolder(ctx context.Context, req *cmis.CreateFolderRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkObjectTypeID(r.Properties); err != nil {
		return "", err
	}
	if err := checkID("Parent Folder Id", r.FolderID); err != nil {
		return "", err
	}
	res, err := w.service.CreateFolder(ctx, r)
	if err != nil {
		return "", w.normalizeError("createFolder", err)
	}
	return res, nil
}

func (w *ServiceWrapper) CreateRelationship(ctx context.Context, req *cmis.CreateRelationshipRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkObjectTypeID(r.Properties); err != nil {
		return "", err
	}
	res, err := w.service.CreateRelationship(ctx, r)
	if err != nil {
		return "", w.normalizeError("createRelationship", err)
	}
	return res, nil
}

func (w *ServiceWrapper) CreatePolicy(ctx context.Context, req *cmis.CreatePolicyRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkObjectTypeID(r.Properties); err != nil {
		return "", err
	}
	res, err := w.service.CreatePolicy(ctx, r)
	if err != nil {
		return "", w.normalizeError("createPolicy", err)
	}
	return res, nil
}

func (w *ServiceWrapper) CreateItem(ctx context.Context, req *cmis.CreateItemRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkObjectTypeID(r.Properties); err != nil {
		return "", err
	}
	res, err := w.service.CreateItem(ctx, r)
	if err != nil {
		return "", w.normalizeError("createItem", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetAllowableActions(ctx context.Context, repositoryID, objectID string) (*cmis.AllowableActions, error) {
	if err := checkRepositoryID(repositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", objectID); err != nil {
		return nil, err
	}
	res, err := w.service.GetAllowableActions(ctx, repositoryID, objectID)
	if err != nil {
		return nil, w.normalizeError("getAllowableActions", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetObject(ctx context.Context, req *cmis.GetObjectRequest) (*cmis.ObjectData, error) {
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
	r.IncludePolicyIDs = defaultFalse(r.IncludePolicyIDs)
	r.IncludeACL = defaultFalse(r.IncludeACL)
	res, err := w.service.GetObject(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getObject", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetProperties(ctx context.Context, req *cmis.GetPropertiesRequest) (*cmis.Properties, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	res, err := w.service.GetProperties(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getProperties", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetRenditions(ctx context.Context, req *cmis.GetRenditionsRequest) ([]*cmis.RenditionData, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	r.RenditionFilter = defaultRenditionFilter(r.RenditionFilter)
	if err := paging(w.maxItems, &r.MaxItems, &r.SkipCount); err != nil {
		return nil, err
	}
	res, err := w.service.GetRenditions(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getRenditions", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetObjectByPath(ctx context.Context, req *cmis.GetObjectByPathRequest) (*cmis.ObjectData, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkPath("Path", r.Path); err != nil {
		return nil, err
	}
	r.IncludeAllowableActions = defaultFalse(r.IncludeAllowableActions)
	r.IncludeRelationships = defaultIncludeRelationships(r.IncludeRelationships)
	r.RenditionFilter = defaultRenditionFilter(r.RenditionFilter)
	r.IncludePolicyIDs = defaultFalse(r.IncludePolicyIDs)
	r.IncludeACL = defaultFalse(r.IncludeACL)
	res, err := w.service.GetObjectByPath(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getObjectByPath", err)
	}
	return res, nil
}

func (w *ServiceWrapper) GetContentStream(ctx context.Context, req *cmis.GetContentStreamRequest) (*cmis.ContentStream, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	if err := checkNullOrPositive("Offset", r.Offset); err != nil {
		return nil, err
	}
	if err := checkNullOrPositive("Length", r.Length); err != nil {
		return nil, err
	}
	res, err := w.service.GetContentStream(ctx, r)
	if err != nil {
		return nil, w.normalizeError("getContentStream", err)
	}
	return res, nil
}

func (w *ServiceWrapper) UpdateProperties(ctx context.Context, req *cmis.UpdatePropertiesRequest) (*cmis.ObjectRef, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	if err := checkProperties(r.Properties); err != nil {
		return nil, err
	}
	res, err := w.service.UpdateProperties(ctx, r)
	if err != nil {
		return nil, w.normalizeError("updateProperties", err)
	}
	return res, nil
}

func (w *ServiceWrapper) BulkUpdateProperties(ctx context.Context, req *cmis.BulkUpdatePropertiesRequest) ([]*cmis.BulkUpdateObjectIDAndChangeToken, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if len(r.ObjectIDAndChangeTokens) == 0 {
		return nil, cmis.NewInvalidArgumentError("Object Id list must be set!")
	}
	for _, oc := range r.ObjectIDAndChangeTokens {
		if oc == nil {
			return nil, cmis.NewInvalidArgumentError("Object Id list has gaps!")
		}
		if err := checkID("Object Id", oc.ID); err != nil {
			return nil, err
		}
	}
	if err := checkProperties(r.Properties); err != nil {
		return nil, err
	}
	res, err := w.service.BulkUpdateProperties(ctx, r)
	if err != nil {
		return nil, w.normalizeError("bulkUpdateProperties", err)
	}
	return res, nil
}

func (w *ServiceWrapper) MoveObject(ctx context.Context, req *cmis.MoveObjectRequest) (string, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return "", err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return "", err
	}
	if err := checkID("Target Folder Id", r.TargetFolderID); err != nil {
		return "", err
	}
	if err := checkID("Source Folder Id", r.SourceFolderID); err != nil {
		return "", err
	}
	res, err := w.service.MoveObject(ctx, r)
	if err != nil {
		return "", w.normalizeError("moveObject", err)
	}
	return res, nil
}

func prepareDelete(req *cmis.DeleteObjectRequest) (*cmis.DeleteObjectRequest, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	r.AllVersions = defaultTrue(r.AllVersions)
	return r, nil
}

func (w *ServiceWrapper) DeleteObject(ctx context.Context, req *cmis.DeleteObjectRequest) error {
	r, err := prepareDelete(req)
	if err != nil {
		return err
	}
	if err := w.service.DeleteObject(ctx, r); err != nil {
		return w.normalizeError("deleteObject", err)
	}
	return nil
}

func (w *ServiceWrapper) DeleteObjectOrCancelCheckOut(ctx context.Context, req *cmis.DeleteObjectRequest) error {
	r, err := prepareDelete(req)
	if err != nil {
		return err
	}
	if err := w.service.DeleteObjectOrCancelCheckOut(ctx, r); err != nil {
		return w.normalizeError("deleteObjectOrCancelCheckOut", err)
	}
	return nil
}

func (w *ServiceWrapper) DeleteTree(ctx context.Context, req *cmis.DeleteTreeRequest) (*cmis.FailedToDeleteData, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Folder Id", r.FolderID); err != nil {
		return nil, err
	}
	r.AllVersions = defaultTrue(r.AllVersions)
	r.UnfileObjects = defaultUnfileObjects(r.UnfileObjects)
	r.ContinueOnFailure = defaultFalse(r.ContinueOnFailure)
	res, err := w.service.DeleteTree(ctx, r)
	if err != nil {
		return nil, w.normalizeError("deleteTree", err)
	}
	return res, nil
}

func (w *ServiceWrapper) SetContentStream(ctx context.Context, req *cmis.SetContentStreamRequest) (*cmis.ObjectRef, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	r.OverwriteFlag = defaultTrue(r.OverwriteFlag)
	if err := checkContentStream(r.ContentStream); err != nil {
		return nil, err
	}
	res, err := w.service.SetContentStream(ctx, r)
	if err != nil {
		return nil, w.normalizeError("setContentStream", err)
	}
	return res, nil
}

func (w *ServiceWrapper) DeleteContentStream(ctx context.Context, req *cmis.DeleteContentStreamRequest) (*cmis.ObjectRef, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	res, err := w.service.DeleteContentStream(ctx, r)
	if err != nil {
		return nil, w.normalizeError("deleteContentStream", err)
	}
	return res, nil
}

func (w *ServiceWrapper) AppendContentStream(ctx context.Context, req *cmis.AppendContentStreamRequest) (*cmis.ObjectRef, error) {
	r := copyRequest(req)
	if err := checkRepositoryID(r.RepositoryID); err != nil {
		return nil, err
	}
	if err := checkID("Object Id", r.ObjectID); err != nil {
		return nil, err
	}
	if err := checkContentStream(r.ContentStream); err != nil {
		return nil, err
	}
	res, err := w.service.AppendContentStream(ctx, r)
	if err != nil {
		return nil, w.normalizeError("appendContentStream", err)
	}
	return res, nil
}
