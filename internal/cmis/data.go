package cmis

import (
	"io"
)

// RepositoryInfo describes a repository.
type RepositoryInfo struct {
	ID                   string  `json:"repositoryId"`
	Name                 string  `json:"repositoryName"`
	Description          string  `json:"repositoryDescription,omitempty"`
	VendorName           string  `json:"vendorName,omitempty"`
	ProductName          string  `json:"productName,omitempty"`
	ProductVersion       string  `json:"productVersion,omitempty"`
	RootFolderID         string  `json:"rootFolderId,omitempty"`
	LatestChangeLogToken string  `json:"latestChangeLogToken,omitempty"`
	CMISVersion          Version `json:"cmisVersionSupported"`
	PrincipalAnonymous   string  `json:"principalIdAnonymous,omitempty"`
	PrincipalAnyone      string  `json:"principalIdAnyone,omitempty"`
	ChangesIncomplete    bool    `json:"changesIncomplete"`
}

// ContentStream carries document content. Length is -1 when unknown.
type ContentStream struct {
	FileName string
	MimeType string
	Length   int64
	Stream   io.ReadCloser
}

// ACE is a single access control entry.
type ACE struct {
	Principal   string
	Permissions []string
	Direct      bool
}

// ACL is a list of access control entries.
type ACL struct {
	ACEs  []*ACE
	Exact *bool
}

// Len returns the number of entries, treating a nil ACL as empty.
func (a *ACL) Len() int {
	if a == nil {
		return 0
	}
	return len(a.ACEs)
}

type AllowableActions struct {
	Actions []string
}

type RenditionData struct {
	StreamID   string
	MimeType   string
	Length     int64
	Kind       string
	Title      string
	Height     int64
	Width      int64
	DocumentID string
}

// ObjectData is the full representation of a CMIS object.
type ObjectData struct {
	Properties       *Properties
	AllowableActions *AllowableActions
	Relationships    []*ObjectData
	Renditions       []*RenditionData
	PolicyIDs        []string
	ACL              *ACL
	IsExactACL       *bool
}

// ID returns the value of cmis:objectId, or "".
func (o *ObjectData) ID() string {
	if p := o.Properties.Get(PropObjectID); p != nil {
		if s, ok := p.FirstValue().(string); ok {
			return s
		}
	}
	return ""
}

type ObjectList struct {
	Objects      []*ObjectData
	HasMoreItems bool
	NumItems     int64
}

type ObjectInFolderData struct {
	Object      *ObjectData
	PathSegment string
}

type ObjectInFolderList struct {
	Objects      []*ObjectInFolderData
	HasMoreItems bool
	NumItems     int64
}

type ObjectInFolderContainer struct {
	Object   *ObjectInFolderData
	Children []*ObjectInFolderContainer
}

type ObjectParentData struct {
	Object              *ObjectData
	RelativePathSegment string
}

// FailedToDeleteData lists the ids a deleteTree call could not remove.
type FailedToDeleteData struct {
	IDs []string
}

// ObjectRef is an object id plus the change token it was observed with.
// Update operations return the id and token of the object after the change.
type ObjectRef struct {
	ID          string
	ChangeToken string
}

// BulkUpdateObjectIDAndChangeToken identifies one object of a bulk update.
type BulkUpdateObjectIDAndChangeToken struct {
	ID          string
	NewID       string
	ChangeToken string
}

type CheckOutResult struct {
	ObjectID      string
	ContentCopied bool
}

type ContentChanges struct {
	Objects        *ObjectList
	ChangeLogToken string
}

// ObjectInfo summarises an object for binding layers that need link data.
type ObjectInfo struct {
	ID               string
	Name             string
	TypeID           string
	BaseType         BaseTypeID
	HasContent       bool
	HasParent        bool
	IsCurrentVersion bool
}
