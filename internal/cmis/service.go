package cmis

import (
	"context"
)

// Service is the set of CMIS operations a repository exposes. Bindings call
// it through a ServiceWrapper, which guarantees that every optional request
// field has been filled in and validated before an implementation sees it.
//
// Implementations should return *Error values. Anything else is converted to
// a runtime error by the wrapper.
type Service interface {
	// Repository service
	GetRepositoryInfos(ctx context.Context) ([]*RepositoryInfo, error)
	GetRepositoryInfo(ctx context.Context, repositoryID string) (*RepositoryInfo, error)
	GetTypeChildren(ctx context.Context, req *GetTypeChildrenRequest) (*TypeDefinitionList, error)
	GetTypeDescendants(ctx context.Context, req *GetTypeDescendantsRequest) ([]*TypeDefinitionContainer, error)
	GetTypeDefinition(ctx context.Context, repositoryID, typeID string) (*TypeDefinition, error)
	CreateType(ctx context.Context, repositoryID string, td *TypeDefinition) (*TypeDefinition, error)
	UpdateType(ctx context.Context, repositoryID string, td *TypeDefinition) (*TypeDefinition, error)
	DeleteType(ctx context.Context, repositoryID, typeID string) error

	// Navigation service
	GetChildren(ctx context.Context, req *GetChildrenRequest) (*ObjectInFolderList, error)
	GetDescendants(ctx context.Context, req *GetDescendantsRequest) ([]*ObjectInFolderContainer, error)
	GetFolderTree(ctx context.Context, req *GetDescendantsRequest) ([]*ObjectInFolderContainer, error)
	GetObjectParents(ctx context.Context, req *GetObjectParentsRequest) ([]*ObjectParentData, error)
	GetFolderParent(ctx context.Context, req *GetFolderParentRequest) (*ObjectData, error)
	GetCheckedOutDocs(ctx context.Context, req *GetCheckedOutDocsRequest) (*ObjectList, error)

	// Object service
	Create(ctx context.Context, req *CreateRequest) (string, error)
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (string, error)
	CreateDocumentFromSource(ctx context.Context, req *CreateDocumentFromSourceRequest) (string, error)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (string, error)
	CreateRelationship(ctx context.Context, req *CreateRelationshipRequest) (string, error)
	CreatePolicy(ctx context.Context, req *CreatePolicyRequest) (string, error)
	CreateItem(ctx context.Context, req *CreateItemRequest) (string, error)
	GetAllowableActions(ctx context.Context, repositoryID, objectID string) (*AllowableActions, error)
	GetObject(ctx context.Context, req *GetObjectRequest) (*ObjectData, error)
	GetProperties(ctx context.Context, req *GetPropertiesRequest) (*Properties, error)
	GetRenditions(ctx context.Context, req *GetRenditionsRequest) ([]*RenditionData, error)
	GetObjectByPath(ctx context.Context, req *GetObjectByPathRequest) (*ObjectData, error)
	GetContentStream(ctx context.Context, req *GetContentStreamRequest) (*ContentStream, error)
	UpdateProperties(ctx context.Context, req *UpdatePropertiesRequest) (*ObjectRef, error)
	BulkUpdateProperties(ctx context.Context, req *BulkUpdatePropertiesRequest) ([]*BulkUpdateObjectIDAndChangeToken, error)
	MoveObject(ctx context.Context, req *MoveObjectRequest) (string, error)
	DeleteObject(ctx context.Context, req *DeleteObjectRequest) error
	DeleteObjectOrCancelCheckOut(ctx context.Context, req *DeleteObjectRequest) error
	DeleteTree(ctx context.Context, req *DeleteTreeRequest) (*FailedToDeleteData, error)
	SetContentStream(ctx context.Context, req *SetContentStreamRequest) (*ObjectRef, error)
	DeleteContentStream(ctx context.Context, req *DeleteContentStreamRequest) (*ObjectRef, error)
	AppendContentStream(ctx context.Context, req *AppendContentStreamRequest) (*ObjectRef, error)

	// Versioning service
	CheckOut(ctx context.Context, repositoryID, objectID string) (*CheckOutResult, error)
	CancelCheckOut(ctx context.Context, repositoryID, objectID string) error
	CheckIn(ctx context.Context, req *CheckInRequest) (string, error)
	GetObjectOfLatestVersion(ctx context.Context, req *GetObjectOfLatestVersionRequest) (*ObjectData, error)
	GetPropertiesOfLatestVersion(ctx context.Context, req *GetPropertiesOfLatestVersionRequest) (*Properties, error)
	GetAllVersions(ctx context.Context, req *GetAllVersionsRequest) ([]*ObjectData, error)

	// Discovery service
	Query(ctx context.Context, req *QueryRequest) (*ObjectList, error)
	GetContentChanges(ctx context.Context, req *GetContentChangesRequest) (*ContentChanges, error)

	// Multi-filing service
	AddObjectToFolder(ctx context.Context, req *AddObjectToFolderRequest) error
	RemoveObjectFromFolder(ctx context.Context, req *RemoveObjectFromFolderRequest) error

	// Relationship service
	GetObjectRelationships(ctx context.Context, req *GetObjectRelationshipsRequest) (*ObjectList, error)

	// ACL service
	GetACL(ctx context.Context, req *GetACLRequest) (*ACL, error)
	ApplyACL(ctx context.Context, req *ApplyACLRequest) (*ACL, error)
	SetACL(ctx context.Context, req *SetACLRequest) (*ACL, error)

	// Policy service
	ApplyPolicy(ctx context.Context, req *PolicyRequest) error
	RemovePolicy(ctx context.Context, req *PolicyRequest) error
	GetAppliedPolicies(ctx context.Context, req *GetAppliedPoliciesRequest) ([]*ObjectData, error)

	GetObjectInfo(ctx context.Context, repositoryID, objectID string) (*ObjectInfo, error)

	Close() error
}
