package cmis

// Request types for Service operations. Pointer fields are optional; a nil
// value asks for the default the CMIS specification defines, which
// ServiceWrapper fills in before the request reaches an implementation.

// Repository service

type GetTypeChildrenRequest struct {
	RepositoryID               string
	TypeID                     string
	IncludePropertyDefinitions *bool
	MaxItems                   *int64
	SkipCount                  *int64
}

type GetTypeDescendantsRequest struct {
	RepositoryID               string
	TypeID                     string
	Depth                      *int64
	IncludePropertyDefinitions *bool
}

// Navigation service

type GetChildrenRequest struct {
	RepositoryID            string
	FolderID                string
	Filter                  string
	OrderBy                 string
	IncludeAllowableActions *bool
	IncludeRelationships    *IncludeRelationships
	RenditionFilter         *string
	IncludePathSegment      *bool
	MaxItems                *int64
	SkipCount               *int64
}

// GetDescendantsRequest is used by both GetDescendants and GetFolderTree.
type GetDescendantsRequest struct {
	RepositoryID            string
	FolderID                string
	Depth                   *int64
	Filter                  string
	IncludeAllowableActions *bool
	IncludeRelationships    *IncludeRelationships
	RenditionFilter         *string
	IncludePathSegment      *bool
}

type GetObjectParentsRequest struct {
	RepositoryID               string
	ObjectID                   string
	Filter                     string
	IncludeAllowableActions    *bool
	IncludeRelationships       *IncludeRelationships
	RenditionFilter            *string
	IncludeRelativePathSegment *bool
}

type GetFolderParentRequest struct {
	RepositoryID string
	FolderID     string
	Filter       string
}

type GetCheckedOutDocsRequest struct {
	RepositoryID            string
	FolderID                string
	Filter                  string
	OrderBy                 string
	IncludeAllowableActions *bool
	IncludeRelationships    *IncludeRelationships
	RenditionFilter         *string
	MaxItems                *int64
	SkipCount               *int64
}

// Object service

// CreateRequest creates an object of any base type.
type CreateRequest struct {
	RepositoryID    string
	Properties      *Properties
	FolderID        string
	ContentStream   *ContentStream
	VersioningState *VersioningState
	PolicyIDs       []string
}

type CreateDocumentRequest struct {
	RepositoryID    string
	Properties      *Properties
	FolderID        string
	ContentStream   *ContentStream
	VersioningState *VersioningState
	PolicyIDs       []string
	AddACEs         *ACL
	RemoveACEs      *ACL
}

type CreateDocumentFromSourceRequest struct {
	RepositoryID    string
	SourceID        string
	Properties      *Properties
	FolderID        string
	VersioningState *VersioningState
	PolicyIDs       []string
	AddACEs         *ACL
	RemoveACEs      *ACL
}

type CreateFolderRequest struct {
	RepositoryID string
	Properties   *Properties
	FolderID     string
	PolicyIDs    []string
	AddACEs      *ACL
	RemoveACEs   *ACL
}

type CreateRelationshipRequest struct {
	RepositoryID string
	Properties   *Properties
	PolicyIDs    []string
	AddACEs      *ACL
	RemoveACEs   *ACL
}

type CreatePolicyRequest struct {
	RepositoryID string
	Properties   *Properties
	FolderID     string
	PolicyIDs    []string
	AddACEs      *ACL
	RemoveACEs   *ACL
}

type CreateItemRequest struct {
	RepositoryID string
	Properties   *Properties
	FolderID     string
	PolicyIDs    []string
	AddACEs      *ACL
	RemoveACEs   *ACL
}

type GetObjectRequest struct {
	RepositoryID            string
	ObjectID                string
	Filter                  string
	IncludeAllowableActions *bool
	IncludeRelationships    *IncludeRelationships
	RenditionFilter         *string
	IncludePolicyIDs        *bool
	IncludeACL              *bool
}

type GetPropertiesRequest struct {
	RepositoryID string
	ObjectID     string
	Filter       string
}

type GetRenditionsRequest struct {
	RepositoryID    string
	ObjectID        string
	RenditionFilter *string
	MaxItems        *int64
	SkipCount       *int64
}

type GetObjectByPathRequest struct {
	RepositoryID            string
	Path                    string
	Filter                  string
	IncludeAllowableActions *bool
	IncludeRelationships    *IncludeRelationships
	RenditionFilter         *string
	IncludePolicyIDs        *bool
	IncludeACL              *bool
}

type GetContentStreamRequest struct {
	RepositoryID string
	ObjectID     string
	StreamID     string
	Offset       *int64
	Length       *int64
}

type UpdatePropertiesRequest struct {
	RepositoryID string
	ObjectID     string
	ChangeToken  string
	Properties   *Properties
}

type BulkUpdatePropertiesRequest struct {
	RepositoryID            string
	ObjectIDAndChangeTokens []*BulkUpdateObjectIDAndChangeToken
	Properties              *Properties
	AddSecondaryTypeIDs     []string
	RemoveSecondaryTypeIDs  []string
}

type MoveObjectRequest struct {
	RepositoryID   string
	ObjectID       string
	TargetFolderID string
	SourceFolderID string
}

// DeleteObjectRequest is used by DeleteObject and DeleteObjectOrCancelCheckOut.
type DeleteObjectRequest struct {
	RepositoryID string
	ObjectID     string
	AllVersions  *bool
}

type DeleteTreeRequest struct {
	RepositoryID      string
	FolderID          string
	AllVersions       *bool
	UnfileObjects     *UnfileObjects
	ContinueOnFailure *bool
}

type SetContentStreamRequest struct {
	RepositoryID  string
	ObjectID      string
	OverwriteFlag *bool
	ChangeToken   string
	ContentStream *ContentStream
}

type DeleteContentStreamRequest struct {
	RepositoryID string
	ObjectID     string
	ChangeToken  string
}

type AppendContentStreamRequest struct {
	RepositoryID  string
	ObjectID      string
	ChangeToken   string
	ContentStream *ContentStream
	IsLastChunk   bool
}

// Versioning service

type CheckInRequest struct {
	RepositoryID   string
	ObjectID       string
	Major          *bool
	Properties     *Properties
	ContentStream  *ContentStream
	CheckinComment string
	PolicyIDs      []string
	AddACEs        *ACL
	RemoveACEs     *ACL
}

type GetObjectOfLatestVersionRequest struct {
	RepositoryID            string
	ObjectID                string
	VersionSeriesID         string
	Major                   *bool
	Filter                  string
	IncludeAllowableActions *bool
	IncludeRelationships    *IncludeRelationships
	RenditionFilter         *string
	IncludePolicyIDs        *bool
	IncludeACL              *bool
}

type GetPropertiesOfLatestVersionRequest struct {
	RepositoryID    string
	ObjectID        string
	VersionSeriesID string
	Major           *bool
	Filter          string
}

type GetAllVersionsRequest struct {
	RepositoryID            string
	ObjectID                string
	VersionSeriesID         string
	Filter                  string
	IncludeAllowableActions *bool
}

// Discovery service

type QueryRequest struct {
	RepositoryID            string
	Statement               string
	SearchAllVersions       *bool
	IncludeAllowableActions *bool
	IncludeRelationships    *IncludeRelationships
	RenditionFilter         *string
	MaxItems                *int64
	SkipCount               *int64
}

type GetContentChangesRequest struct {
	RepositoryID      string
	ChangeLogToken    string
	IncludeProperties *bool
	Filter            string
	IncludePolicyIDs  *bool
	IncludeACL        *bool
	MaxItems          *int64
}

// Multi-filing service

type AddObjectToFolderRequest struct {
	RepositoryID string
	ObjectID     string
	FolderID     string
	AllVersions  *bool
}

type RemoveObjectFromFolderRequest struct {
	RepositoryID string
	ObjectID     string
	FolderID     string
}

// Relationship service

type GetObjectRelationshipsRequest struct {
	RepositoryID                string
	ObjectID                    string
	IncludeSubRelationshipTypes *bool
	RelationshipDirection       *RelationshipDirection
	TypeID                      string
	Filter                      string
	IncludeAllowableActions     *bool
	MaxItems                    *int64
	SkipCount                   *int64
}

// ACL service

type GetACLRequest struct {
	RepositoryID         string
	ObjectID             string
	OnlyBasicPermissions *bool
}

type ApplyACLRequest struct {
	RepositoryID   string
	ObjectID       string
	AddACEs        *ACL
	RemoveACEs     *ACL
	ACLPropagation *ACLPropagation
}

// SetACLRequest replaces the object's ACL with ACEs.
type SetACLRequest struct {
	RepositoryID   string
	ObjectID       string
	ACEs           *ACL
	ACLPropagation *ACLPropagation
}

// Policy service

// PolicyRequest is used by ApplyPolicy and RemovePolicy.
type PolicyRequest struct {
	RepositoryID string
	PolicyID     string
	ObjectID     string
}

type GetAppliedPoliciesRequest struct {
	RepositoryID string
	ObjectID     string
	Filter       string
}
