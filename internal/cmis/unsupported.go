package cmis

import (
	"context"
)

// UnsupportedService implements Service by returning a not-supported error
// from every operation. Embed it and override the operations a repository
// actually provides.
type UnsupportedService struct{}

var _ Service = UnsupportedService{}

func notSupported(op string) *Error {
	return NewNotSupportedError("%s is not supported", op)
}

func (UnsupportedService) GetRepositoryInfos(_ context.Context) ([]*RepositoryInfo, error) {
	return nil, notSupported("getRepositoryInfos")
}

func (UnsupportedService) GetRepositoryInfo(_ context.Context, _ string) (*RepositoryInfo, error) {
	return nil, notSupported("getRepositoryInfo")
}

func (UnsupportedService) GetTypeChildren(_ context.Context, _ *GetTypeChildrenRequest) (*TypeDefinitionList, error) {
	return nil, notSupported("getTypeChildren")
}

func (UnsupportedService) GetTypeDescendants(_ context.Context, _ *GetTypeDescendantsRequest) ([]*TypeDefinitionContainer, error) {
	return nil, notSupported("getTypeDescendants")
}

func (UnsupportedService) GetTypeDefinition(_ context.Context, _, _ string) (*TypeDefinition, error) {
	return nil, notSupported("getTypeDefinition")
}

func (UnsupportedService) CreateType(_ context.Context, _ string, _ *TypeDefinition) (*TypeDefinition, error) {
	return nil, notSupported("createType")
}

func (UnsupportedService) UpdateType(_ context.Context, _ string, _ *TypeDefinition) (*TypeDefinition, error) {
	return nil, notSupported("updateType")
}

func (UnsupportedService) DeleteType(_ context.Context, _, _ string) error {
	return notSupported("deleteType")
}

func (UnsupportedService) GetChildren(_ context.Context, _ *GetChildrenRequest) (*ObjectInFolderList, error) {
	return nil, notSupported("getChildren")
}

func (UnsupportedService) GetDescendants(_ context.Context, _ *GetDescendantsRequest) ([]*ObjectInFolderContainer, error) {
	return nil, notSupported("getDescendants")
}

func (UnsupportedService) GetFolderTree(_ context.Context, _ *GetDescendantsRequest) ([]*ObjectInFolderContainer, error) {
	return nil, notSupported("getFolderTree")
}

func (UnsupportedService) GetObjectParents(_ context.Context, _ *GetObjectParentsRequest) ([]*ObjectParentData, error) {
	return nil, notSupported("getObjectParents")
}

func (UnsupportedService) GetFolderParent(_ context.Context, _ *GetFolderParentRequest) (*ObjectData, error) {
	return nil, notSupported("getFolderParent")
}

func (UnsupportedService) GetCheckedOutDocs(_ context.Context, _ *GetCheckedOutDocsRequest) (*ObjectList, error) {
	return nil, notSupported("getCheckedOutDocs")
}

func (UnsupportedService) Create(_ context.Context, _ *CreateRequest) (string, error) {
	return "", notSupported("create")
}

func (UnsupportedService) CreateDocument(_ context.Context, _ *CreateDocumentRequest) (string, error) {
	return "", notSupported("createDocument")
}

func (UnsupportedService) CreateDocumentFromSource(_ context.Context, _ *CreateDocumentFromSourceRequest) (string, error) {
	return "", notSupported("createDocumentFromSource")
}

func (UnsupportedService) CreateFolder(_ context.Context, _ *CreateFolderRequest) (string, error) {
	return "", notSupported("createFolder")
}

func (UnsupportedService) CreateRelationship(_ context.Context, _ *CreateRelationshipRequest) (string, error) {
	return "", notSupported("createRelationship")
}

func (UnsupportedService) CreatePolicy(_ context.Context, _ *CreatePolicyRequest) (string, error) {
	return "", notSupported("createPolicy")
}

func (UnsupportedService) CreateItem(_ context.Context, _ *CreateItemRequest) (string, error) {
	return "", notSupported("createItem")
}

func (UnsupportedService) GetAllowableActions(_ context.Context, _, _ string) (*AllowableActions, error) {
	return nil, notSupported("getAllowableActions")
}

func (UnsupportedService) GetObject(_ context.Context, _ *GetObjectRequest) (*ObjectData, error) {
	return nil, notSupported("getObject")
}

func (UnsupportedService) GetProperties(_ context.Context, _ *GetPropertiesRequest) (*Properties, error) {
	return nil, notSupported("getProperties")
}

func (UnsupportedService) GetRenditions(_ context.Context, _ *GetRenditionsRequest) ([]*RenditionData, error) {
	return nil, notSupported("getRenditions")
}

func (UnsupportedService) GetObjectByPath(_ context.Context, _ *GetObjectByPathRequest) (*ObjectData, error) {
	return nil, notSupported("getObjectByPath")
}

func (UnsupportedService) GetContentStream(_ context.Context, _ *GetContentStreamRequest) (*ContentStream, error) {
	return nil, notSupported("getContentStream")
}

func (UnsupportedService) UpdateProperties(_ context.Context, _ *UpdatePropertiesRequest) (*ObjectRef, error) {
	return nil, notSupported("updateProperties")
}

func (UnsupportedService) BulkUpdateProperties(_ context.Context, _ *BulkUpdatePropertiesRequest) ([]*BulkUpdateObjectIDAndChangeToken, error) {
	return nil, notSupported("bulkUpdateProperties")
}

func (UnsupportedService) MoveObject(_ context.Context, _ *MoveObjectRequest) (string, error) {
	return "", notSupported("moveObject")
}

func (UnsupportedService) DeleteObject(_ context.Context, _ *DeleteObjectRequest) error {
	return notSupported("deleteObject")
}

func (UnsupportedService) DeleteObjectOrCancelCheckOut(_ context.Context, _ *DeleteObjectRequest) error {
	return notSupported("deleteObjectOrCancelCheckOut")
}

func (UnsupportedService) DeleteTree(_ context.Context, _ *DeleteTreeRequest) (*FailedToDeleteData, error) {
	return nil, notSupported("deleteTree")
}

func (UnsupportedService) SetContentStream(_ context.Context, _ *SetContentStreamRequest) (*ObjectRef, error) {
	return nil, notSupported("setContentStream")
}

func (UnsupportedService) DeleteContentStream(_ context.Context, _ *DeleteContentStreamRequest) (*ObjectRef, error) {
	return nil, notSupported("deleteContentStream")
}

func (UnsupportedService) AppendContentStream(_ context.Context, _ *AppendContentStreamRequest) (*ObjectRef, error) {
	return nil, notSupported("appendContentStream")
}

func (UnsupportedService) CheckOut(_ context.Context, _, _ string) (*CheckOutResult, error) {
	return nil, notSupported("checkOut")
}

func (UnsupportedService) CancelCheckOut(_ context.Context, _, _ string) error {
	return notSupported("cancelCheckOut")
}

func (UnsupportedService) CheckIn(_ context.Context, _ *CheckInRequest) (string, error) {
	return "", notSupported("checkIn")
}

func (UnsupportedService) GetObjectOfLatestVersion(_ context.Context, _ *GetObjectOfLatestVersionRequest) (*ObjectData, error) {
	return nil, notSupported("getObjectOfLatestVersion")
}

func (UnsupportedService) GetPropertiesOfLatestVersion(_ context.Context, _ *GetPropertiesOfLatestVersionRequest) (*Properties, error) {
	return nil, notSupported("getPropertiesOfLatestVersion")
}

func (UnsupportedService) GetAllVersions(_ context.Context, _ *GetAllVersionsRequest) ([]*ObjectData, error) {
	return nil, notSupported("getAllVersions")
}

func (UnsupportedService) Query(_ context.Context, _ *QueryRequest) (*ObjectList, error) {
	return nil, notSupported("query")
}

func (UnsupportedService) GetContentChanges(_ context.Context, _ *GetContentChangesRequest) (*ContentChanges, error) {
	return nil, notSupported("getContentChanges")
}

func (UnsupportedService) AddObjectToFolder(_ context.Context, _ *AddObjectToFolderRequest) error {
	return notSupported("addObjectToFolder")
}

func (UnsupportedService) RemoveObjectFromFolder(_ context.Context, _ *RemoveObjectFromFolderRequest) error {
	return notSupported("removeObjectFromFolder")
}

func (UnsupportedService) GetObjectRelationships(_ context.Context, _ *GetObjectRelationshipsRequest) (*ObjectList, error) {
	return nil, notSupported("getObjectRelationships")
}

func (UnsupportedService) GetACL(_ context.Context, _ *GetACLRequest) (*ACL, error) {
	return nil, notSupported("getACL")
}

func (UnsupportedService) ApplyACL(_ context.Context, _ *ApplyACLRequest) (*ACL, error) {
	return nil, notSupported("applyACL")
}

func (UnsupportedService) SetACL(_ context.Context, _ *SetACLRequest) (*ACL, error) {
	return nil, notSupported("setACL")
}

func (UnsupportedService) ApplyPolicy(_ context.Context, _ *PolicyRequest) error {
	return notSupported("applyPolicy")
}

func (UnsupportedService) RemovePolicy(_ context.Context, _ *PolicyRequest) error {
	return notSupported("removePolicy")
}

func (UnsupportedService) GetAppliedPolicies(_ context.Context, _ *GetAppliedPoliciesRequest) ([]*ObjectData, error) {
	return nil, notSupported("getAppliedPolicies")
}

func (UnsupportedService) GetObjectInfo(_ context.Context, _, _ string) (*ObjectInfo, error) {
	return nil, notSupported("getObjectInfo")
}

func (UnsupportedService) Close() error { return nil }
