package testutil

import (
	"context"
	"sync"

	"cmis-go/internal/cmis"
)

// Call is one recorded StubService invocation.
type Call struct {
	Op      string
	Request any
}

// StubService is a cmis.Service that records every call and answers with
// the result and error configured for the operation. Safe for concurrent use.
type StubService struct {
	mu      sync.Mutex
	results map[string]any
	errs    map[string]error
	calls   []Call
	closed  bool
}

var _ cmis.Service = (*StubService)(nil)

func NewStubService() *StubService {
	return &StubService{
		results: make(map[string]any),
		errs:    make(map[string]error),
	}
}

// SetResult configures the value op returns.
func (s *StubService) SetResult(op string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[op] = v
}

// SetError configures the error op returns.
func (s *StubService) SetError(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[op] = err
}

// Calls returns the recorded calls in order.
func (s *StubService) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// LastRequest returns the request of the most recent call to op, or nil.
func (s *StubService) LastRequest(op string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.calls) - 1; i >= 0; i-- {
		if s.calls[i].Op == op {
			return s.calls[i].Request
		}
	}
	return nil
}

func (s *StubService) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *StubService) record(op string, req any) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: op, Request: req})
	return s.results[op], s.errs[op]
}

func (s *StubService) GetRepositoryInfos(_ context.Context) ([]*cmis.RepositoryInfo, error) {
	v, err := s.record("GetRepositoryInfos", nil)
	res, _ := v.([]*cmis.RepositoryInfo)
	return res, err
}

func (s *StubService) GetRepositoryInfo(_ context.Context, repositoryID string) (*cmis.RepositoryInfo, error) {
	v, err := s.record("GetRepositoryInfo", []any{repositoryID})
	res, _ := v.(*cmis.RepositoryInfo)
	return res, err
}

func (s *StubService) GetTypeChildren(_ context.Context, req *cmis.GetTypeChildrenRequest) (*cmis.TypeDefinitionList, error) {
	v, err := s.record("GetTypeChildren", req)
	res, _ := v.(*cmis.TypeDefinitionList)
	return res, err
}

func (s *StubService) GetTypeDescendants(_ context.Context, req *cmis.GetTypeDescendantsRequest) ([]*cmis.TypeDefinitionContainer, error) {
	v, err := s.record("GetTypeDescendants", req)
	res, _ := v.([]*cmis.TypeDefinitionContainer)
	return res, err
}

func (s *StubService) GetTypeDefinition(_ context.Context, repositoryID, typeID string) (*cmis.TypeDefinition, error) {
	v, err := s.record("GetTypeDefinition", []any{repositoryID, typeID})
	res, _ := v.(*cmis.TypeDefinition)
	return res, err
}

func (s *StubService) CreateType(_ context.Context, repositoryID string, td *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	v, err := s.record("CreateType", []any{repositoryID, td})
	res, _ := v.(*cmis.TypeDefinition)
	return res, err
}

func (s *StubService) UpdateType(_ context.Context, repositoryID string, td *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	v, err := s.record("UpdateType", []any{repositoryID, td})
	res, _ := v.(*cmis.TypeDefinition)
	return res, err
}

func (s *StubService) DeleteType(_ context.Context, repositoryID, typeID string) error {
	_, err := s.record("DeleteType", []any{repositoryID, typeID})
	return err
}

func (s *StubService) GetChildren(_ context.Context, req *cmis.GetChildrenRequest) (*cmis.ObjectInFolderList, error) {
	v, err := s.record("GetChildren", req)
	res, _ := v.(*cmis.ObjectInFolderList)
	return res, err
}

func (s *StubService) GetDescendants(_ context.Context, req *cmis.GetDescendantsRequest) ([]*cmis.ObjectInFolderContainer, error) {
	v, err := s.record("GetDescendants", req)
	res, _ := v.([]*cmis.ObjectInFolderContainer)
	return res, err
}

func (s *StubService) GetFolderTree(_ context.Context, req *cmis.GetDescendantsRequest) ([]*cmis.ObjectInFolderContainer, error) {
	v, err := s.record("GetFolderTree", req)
	res, _ := v.([]*cmis.ObjectInFolderContainer)
	return res, err
}

func (s *StubService) GetObjectParents(_ context.Context, req *cmis.GetObjectParentsRequest) ([]*cmis.ObjectParentData, error) {
	v, err := s.record("GetObjectParents", req)
	res, _ := v.([]*cmis.ObjectParentData)
	return res, err
}

func (s *StubService) GetFolderParent(_ context.Context, req *cmis.GetFolderParentRequest) (*cmis.ObjectData, error) {
	v, err := s.record("GetFolderParent", req)
	res, _ := v.(*cmis.ObjectData)
	return res, err
}

func (s *StubService) GetCheckedOutDocs(_ context.Context, req *cmis.GetCheckedOutDocsRequest) (*cmis.ObjectList, error) {
	v, err := s.record("GetCheckedOutDocs", req)
	res, _ := v.(*cmis.ObjectList)
	return res, err
}

func (s *StubService) Create(_ context.Context, req *cmis.CreateRequest) (string, error) {
	v, err := s.record("Create", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) CreateDocument(_ context.Context, req *cmis.CreateDocumentRequest) (string, error) {
	v, err := s.record("CreateDocument", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) CreateDocumentFromSource(_ context.Context, req *cmis.CreateDocumentFromSourceRequest) (string, error) {
	v, err := s.record("CreateDocumentFromSource", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) CreateFolder(_ context.Context, req *cmis.CreateFolderRequest) (string, error) {
	v, err := s.record("CreateFolder", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) CreateRelationship(_ context.Context, req *cmis.CreateRelationshipRequest) (string, error) {
	v, err := s.record("CreateRelationship", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) CreatePolicy(_ context.Context, req *cmis.CreatePolicyRequest) (string, error) {
	v, err := s.record("CreatePolicy", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) CreateItem(_ context.Context, req *cmis.CreateItemRequest) (string, error) {
	v, err := s.record("CreateItem", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) GetAllowableActions(_ context.Context, repositoryID, objectID string) (*cmis.AllowableActions, error) {
	v, err := s.record("GetAllowableActions", []any{repositoryID, objectID})
	res, _ := v.(*cmis.AllowableActions)
	return res, err
}

func (s *StubService) GetObject(_ context.Context, req *cmis.GetObjectRequest) (*cmis.ObjectData, error) {
	v, err := s.record("GetObject", req)
	res, _ := v.(*cmis.ObjectData)
	return res, err
}

func (s *StubService) GetProperties(_ context.Context, req *cmis.GetPropertiesRequest) (*cmis.Properties, error) {
	v, err := s.record("GetProperties", req)
	res, _ := v.(*cmis.Properties)
	return res, err
}

func (s *StubService) GetRenditions(_ context.Context, req *cmis.GetRenditionsRequest) ([]*cmis.RenditionData, error) {
	v, err := s.record("GetRenditions", req)
	res, _ := v.([]*cmis.RenditionData)
	return res, err
}

func (s *StubService) GetObjectByPath(_ context.Context, req *cmis.GetObjectByPathRequest) (*cmis.ObjectData, error) {
	v, err := s.record("GetObjectByPath", req)
	res, _ := v.(*cmis.ObjectData)
	return res, err
}

func (s *StubService) GetContentStream(_ context.Context, req *cmis.GetContentStreamRequest) (*cmis.ContentStream, error) {
	v, err := s.record("GetContentStream", req)
	res, _ := v.(*cmis.ContentStream)
	return res, err
}

func (s *StubService) UpdateProperties(_ context.Context, req *cmis.UpdatePropertiesRequest) (*cmis.ObjectRef, error) {
	v, err := s.record("UpdateProperties", req)
	res, _ := v.(*cmis.ObjectRef)
	return res, err
}

func (s *StubService) BulkUpdateProperties(_ context.Context, req *cmis.BulkUpdatePropertiesRequest) ([]*cmis.BulkUpdateObjectIDAndChangeToken, error) {
	v, err := s.record("BulkUpdateProperties", req)
	res, _ := v.([]*cmis.BulkUpdateObjectIDAndChangeToken)
	return res, err
}

func (s *StubService) MoveObject(_ context.Context, req *cmis.MoveObjectRequest) (string, error) {
	v, err := s.record("MoveObject", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) DeleteObject(_ context.Context, req *cmis.DeleteObjectRequest) error {
	_, err := s.record("DeleteObject", req)
	return err
}

func (s *StubService) DeleteObjectOrCancelCheckOut(_ context.Context, req *cmis.DeleteObjectRequest) error {
	_, err := s.record("DeleteObjectOrCancelCheckOut", req)
	return err
}

func (s *StubService) DeleteTree(_ context.Context, req *cmis.DeleteTreeRequest) (*cmis.FailedToDeleteData, error) {
	v, err := s.record("DeleteTree", req)
	res, _ := v.(*cmis.FailedToDeleteData)
	return res, err
}

func (s *StubService) SetContentStream(_ context.Context, req *cmis.SetContentStreamRequest) (*cmis.ObjectRef, error) {
	v, err := s.record("SetContentStream", req)
	res, _ := v.(*cmis.ObjectRef)
	return res, err
}

func (s *StubService) DeleteContentStream(_ context.Context, req *cmis.DeleteContentStreamRequest) (*cmis.ObjectRef, error) {
	v, err := s.record("DeleteContentStream", req)
	res, _ := v.(*cmis.ObjectRef)
	return res, err
}

func (s *StubService) AppendContentStream(_ context.Context, req *cmis.AppendContentStreamRequest) (*cmis.ObjectRef, error) {
	v, err := s.record("AppendContentStream", req)
	res, _ := v.(*cmis.ObjectRef)
	return res, err
}

func (s *StubService) CheckOut(_ context.Context, repositoryID, objectID string) (*cmis.CheckOutResult, error) {
	v, err := s.record("CheckOut", []any{repositoryID, objectID})
	res, _ := v.(*cmis.CheckOutResult)
	return res, err
}

func (s *StubService) CancelCheckOut(_ context.Context, repositoryID, objectID string) error {
	_, err := s.record("CancelCheckOut", []any{repositoryID, objectID})
	return err
}

func (s *StubService) CheckIn(_ context.Context, req *cmis.CheckInRequest) (string, error) {
	v, err := s.record("CheckIn", req)
	res, _ := v.(string)
	return res, err
}

func (s *StubService) GetObjectOfLatestVersion(_ context.Context, req *cmis.GetObjectOfLatestVersionRequest) (*cmis.ObjectData, error) {
	v, err := s.record("GetObjectOfLatestVersion", req)
	res, _ := v.(*cmis.ObjectData)
	return res, err
}

func (s *StubService) GetPropertiesOfLatestVersion(_ context.Context, req *cmis.GetPropertiesOfLatestVersionRequest) (*cmis.Properties, error) {
	v, err := s.record("GetPropertiesOfLatestVersion", req)
	res, _ := v.(*cmis.Properties)
	return res, err
}

func (s *StubService) GetAllVersions(_ context.Context, req *cmis.GetAllVersionsRequest) ([]*cmis.ObjectData, error) {
	v, err := s.record("GetAllVersions", req)
	res, _ := v.([]*cmis.ObjectData)
	return res, err
}

func (s *StubService) Query(_ context.Context, req *cmis.QueryRequest) (*cmis.ObjectList, error) {
	v, err := s.record("Query", req)
	res, _ := v.(*cmis.ObjectList)
	return res, err
}

func (s *StubService) GetContentChanges(_ context.Context, req *cmis.GetContentChangesRequest) (*cmis.ContentChanges, error) {
	v, err := s.record("GetContentChanges", req)
	res, _ := v.(*cmis.ContentChanges)
	return res, err
}

func (s *StubService) AddObjectToFolder(_ context.Context, req *cmis.AddObjectToFolderRequest) error {
	_, err := s.record("AddObjectToFolder", req)
	return err
}

func (s *StubService) RemoveObjectFromFolder(_ context.Context, req *cmis.RemoveObjectFromFolderRequest) error {
	_, err := s.record("RemoveObjectFromFolder", req)
	return err
}

func (s *StubService) GetObjectRelationships(_ context.Context, req *cmis.GetObjectRelationshipsRequest) (*cmis.ObjectList, error) {
	v, err := s.record("GetObjectRelationships", req)
	res, _ := v.(*cmis.ObjectList)
	return res, err
}

func (s *StubService) GetACL(_ context.Context, req *cmis.GetACLRequest) (*cmis.ACL, error) {
	v, err := s.record("GetACL", req)
	res, _ := v.(*cmis.ACL)
	return res, err
}

func (s *StubService) ApplyACL(_ context.Context, req *cmis.ApplyACLRequest) (*cmis.ACL, error) {
	v, err := s.record("ApplyACL", req)
	res, _ := v.(*cmis.ACL)
	return res, err
}

func (s *StubService) SetACL(_ context.Context, req *cmis.SetACLRequest) (*cmis.ACL, error) {
	v, err := s.record("SetACL", req)
	res, _ := v.(*cmis.ACL)
	return res, err
}

func (s *StubService) ApplyPolicy(_ context.Context, req *cmis.PolicyRequest) error {
	_, err := s.record("ApplyPolicy", req)
	return err
}

func (s *StubService) RemovePolicy(_ context.Context, req *cmis.PolicyRequest) error {
	_, err := s.record("RemovePolicy", req)
	return err
}

func (s *StubService) GetAppliedPolicies(_ context.Context, req *cmis.GetAppliedPoliciesRequest) ([]*cmis.ObjectData, error) {
	v, err := s.record("GetAppliedPolicies", req)
	res, _ := v.([]*cmis.ObjectData)
	return res, err
}

func (s *StubService) GetObjectInfo(_ context.Context, repositoryID, objectID string) (*cmis.ObjectInfo, error) {
	v, err := s.record("GetObjectInfo", []any{repositoryID, objectID})
	res, _ := v.(*cmis.ObjectInfo)
	return res, err
}

func (s *StubService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
