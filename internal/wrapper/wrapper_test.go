package wrapper

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cmis-go/internal/cmis"
	"cmis-go/internal/testutil"
)

func newTestWrapper(t *testing.T) (*ServiceWrapper, *testutil.StubService, *testutil.RecordingLogger) {
	t.Helper()
	stub := testutil.NewStubService()
	logger := testutil.NewRecordingLogger()
	w, err := New(stub, Defaults{TypesMaxItems: 50, TypesDepth: 3, MaxItems: 25, Depth: -1}, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w, stub, logger
}

func TestNew(t *testing.T) {
	if _, err := New(nil, DefaultDefaults(), nil); !cmis.IsInvalidArgument(err) {
		t.Errorf("New(nil) error = %v, want invalid argument", err)
	}

	stub := testutil.NewStubService()
	w, err := New(stub, DefaultDefaults(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.Wrapped() != stub {
		t.Error("Wrapped() did not return the wrapped service")
	}
	if got := w.Defaults(); got != DefaultDefaults() {
		t.Errorf("Defaults() = %+v, want %+v", got, DefaultDefaults())
	}
}

func TestDepth(t *testing.T) {
	w, _, _ := newTestWrapper(t)

	tests := []struct {
		name    string
		in      *int64
		want    int64
		wantErr string
	}{
		{name: "nil uses default", in: nil, want: -1},
		{name: "unlimited", in: cmis.Int64Ptr(-1), want: -1},
		{name: "one", in: cmis.Int64Ptr(1), want: 1},
		{name: "large", in: cmis.Int64Ptr(1000), want: 1000},
		{name: "zero", in: cmis.Int64Ptr(0), wantErr: "depth must not be 0!"},
		{name: "minus two", in: cmis.Int64Ptr(-2), wantErr: "depth must not be < -1!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.depth(tt.in)
			if tt.wantErr != "" {
				if !cmis.IsInvalidArgument(err) || err.Error() != tt.wantErr {
					t.Fatalf("depth() error = %v, want invalid argument %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("depth() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("depth() = %d, want %d", *got, tt.want)
			}
		})
	}

	if got, _ := w.typesDepth(nil); *got != 3 {
		t.Errorf("typesDepth(nil) = %d, want 3", *got)
	}
}

func TestMaxItems(t *testing.T) {
	w, _, _ := newTestWrapper(t)

	tests := []struct {
		name    string
		in      *int64
		want    int64
		wantErr bool
	}{
		{name: "nil uses default", in: nil, want: 25},
		{name: "zero", in: cmis.Int64Ptr(0), want: 0},
		{name: "positive", in: cmis.Int64Ptr(7), want: 7},
		{name: "negative", in: cmis.Int64Ptr(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.maxItems(tt.in)
			if tt.wantErr {
				if !cmis.IsInvalidArgument(err) {
					t.Fatalf("maxItems() error = %v, want invalid argument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("maxItems() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("maxItems() = %d, want %d", *got, tt.want)
			}
		})
	}

	if got, _ := w.typesMaxItems(nil); *got != 50 {
		t.Errorf("typesMaxItems(nil) = %d, want 50", *got)
	}
}

func TestSkipCount(t *testing.T) {
	got, err := skipCount(nil)
	if err != nil || *got != 0 {
		t.Errorf("skipCount(nil) = %v, %v, want 0", got, err)
	}
	if _, err := skipCount(cmis.Int64Ptr(-1)); !cmis.IsInvalidArgument(err) {
		t.Errorf("skipCount(-1) error = %v, want invalid argument", err)
	}
}

func TestParameterChecks(t *testing.T) {
	ctx := context.Background()
	w, stub, _ := newTestWrapper(t)
	validProps := cmis.NewProperties(cmis.NewIDProperty(cmis.PropObjectTypeID, "cmis:document"))

	tests := []struct {
		name    string
		call    func() error
		wantMsg string
	}{
		{
			name:    "missing repository id",
			call:    func() error { _, err := w.GetRepositoryInfo(ctx, ""); return err },
			wantMsg: "Repository Id must be set!",
		},
		{
			name:    "blank repository id",
			call:    func() error { _, err := w.GetRepositoryInfo(ctx, "  "); return err },
			wantMsg: "Repository Id must not be empty!",
		},
		{
			name:    "nil request",
			call:    func() error { _, err := w.GetObject(ctx, nil); return err },
			wantMsg: "Repository Id must be set!",
		},
		{
			name:    "missing object id",
			call:    func() error { _, err := w.GetObject(ctx, &cmis.GetObjectRequest{RepositoryID: "r"}); return err },
			wantMsg: "Object Id must be set!",
		},
		{
			name:    "missing folder id",
			call:    func() error { _, err := w.GetChildren(ctx, &cmis.GetChildrenRequest{RepositoryID: "r"}); return err },
			wantMsg: "Folder Id must be set!",
		},
		{
			name:    "missing type id",
			call:    func() error { _, err := w.GetTypeDefinition(ctx, "r", ""); return err },
			wantMsg: "Type Id must be set!",
		},
		{
			name:    "missing path",
			call:    func() error { _, err := w.GetObjectByPath(ctx, &cmis.GetObjectByPathRequest{RepositoryID: "r"}); return err },
			wantMsg: "Path must be set!",
		},
		{
			name: "relative path",
			call: func() error {
				_, err := w.GetObjectByPath(ctx, &cmis.GetObjectByPathRequest{RepositoryID: "r", Path: "a/b"})
				return err
			},
			wantMsg: "Path must start with '/'!",
		},
		{
			name:    "missing properties",
			call:    func() error { _, err := w.CreateDocument(ctx, &cmis.CreateDocumentRequest{RepositoryID: "r"}); return err },
			wantMsg: "Properties must be set!",
		},
		{
			name: "missing object type id",
			call: func() error {
				_, err := w.CreateFolder(ctx, &cmis.CreateFolderRequest{RepositoryID: "r", Properties: cmis.NewProperties(), FolderID: "f"})
				return err
			},
			wantMsg: "Property cmis:objectTypeId must be set!",
		},
		{
			name: "object type id without value",
			call: func() error {
				props := cmis.NewProperties(cmis.NewIDProperty(cmis.PropObjectTypeID))
				_, err := w.CreateItem(ctx, &cmis.CreateItemRequest{RepositoryID: "r", Properties: props})
				return err
			},
			wantMsg: "Property cmis:objectTypeId must have a value!",
		},
		{
			name: "object type id of wrong type",
			call: func() error {
				props := cmis.NewProperties(cmis.NewIntegerProperty(cmis.PropObjectTypeID, 1))
				_, err := w.CreatePolicy(ctx, &cmis.CreatePolicyRequest{RepositoryID: "r", Properties: props})
				return err
			},
			wantMsg: "Property cmis:objectTypeId has the wrong data type!",
		},
		{
			name: "create folder without parent",
			call: func() error {
				_, err := w.CreateFolder(ctx, &cmis.CreateFolderRequest{RepositoryID: "r", Properties: validProps})
				return err
			},
			wantMsg: "Parent Folder Id must be set!",
		},
		{
			name: "set content without stream",
			call: func() error {
				_, err := w.SetContentStream(ctx, &cmis.SetContentStreamRequest{RepositoryID: "r", ObjectID: "o"})
				return err
			},
			wantMsg: "Content must be set!",
		},
		{
			name: "negative offset",
			call: func() error {
				_, err := w.GetContentStream(ctx, &cmis.GetContentStreamRequest{RepositoryID: "r", ObjectID: "o", Offset: cmis.Int64Ptr(-1)})
				return err
			},
			wantMsg: "Offset must be positive!",
		},
		{
			name: "neither object id nor version series id",
			call: func() error {
				_, err := w.GetObjectOfLatestVersion(ctx, &cmis.GetObjectOfLatestVersionRequest{RepositoryID: "r"})
				return err
			},
			wantMsg: "Version Series Id must be set!",
		},
		{
			name: "negative skip count",
			call: func() error {
				_, err := w.Query(ctx, &cmis.QueryRequest{RepositoryID: "r", Statement: "SELECT * FROM cmis:document", SkipCount: cmis.Int64Ptr(-5)})
				return err
			},
			wantMsg: "skipCount must not be negative!",
		},
		{
			name: "zero depth",
			call: func() error {
				_, err := w.GetFolderTree(ctx, &cmis.GetDescendantsRequest{RepositoryID: "r", FolderID: "f", Depth: cmis.Int64Ptr(0)})
				return err
			},
			wantMsg: "depth must not be 0!",
		},
		{
			name: "empty bulk update",
			call: func() error {
				_, err := w.BulkUpdateProperties(ctx, &cmis.BulkUpdatePropertiesRequest{RepositoryID: "r", Properties: validProps})
				return err
			},
			wantMsg: "Object Id list must be set!",
		},
		{
			name:    "missing policy id",
			call:    func() error { return w.ApplyPolicy(ctx, &cmis.PolicyRequest{RepositoryID: "r", ObjectID: "o"}) },
			wantMsg: "Policy Id must be set!",
		},
		{
			name:    "missing source folder",
			call:    func() error { _, err := w.MoveObject(ctx, &cmis.MoveObjectRequest{RepositoryID: "r", ObjectID: "o", TargetFolderID: "t"}); return err },
			wantMsg: "Source Folder Id must be set!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !cmis.IsInvalidArgument(err) {
				t.Fatalf("error = %v, want invalid argument", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}

	if calls := stub.Calls(); len(calls) != 0 {
		t.Errorf("wrapped service was called %d times for invalid requests", len(calls))
	}
}

func TestDefaults_GetObject(t *testing.T) {
	ctx := context.Background()
	w, stub, _ := newTestWrapper(t)

	req := &cmis.GetObjectRequest{RepositoryID: "r", ObjectID: "o", RenditionFilter: new(string)}
	if _, err := w.GetObject(ctx, req); err != nil {
		t.Fatalf("GetObject() error = %v", err)
	}

	got, ok := stub.LastRequest("GetObject").(*cmis.GetObjectRequest)
	if !ok {
		t.Fatal("wrapped GetObject was not called")
	}
	if *got.IncludeAllowableActions || *got.IncludePolicyIDs || *got.IncludeACL {
		t.Errorf("boolean flags = %v/%v/%v, want all false", *got.IncludeAllowableActions, *got.IncludePolicyIDs, *got.IncludeACL)
	}
	if *got.IncludeRelationships != cmis.IncludeRelationshipsNone {
		t.Errorf("IncludeRelationships = %q, want %q", *got.IncludeRelationships, cmis.IncludeRelationshipsNone)
	}
	if *got.RenditionFilter != cmis.RenditionFilterNone {
		t.Errorf("RenditionFilter = %q, want %q", *got.RenditionFilter, cmis.RenditionFilterNone)
	}
	if req.IncludeACL != nil || *req.RenditionFilter != "" {
		t.Error("GetObject() modified the caller's request")
	}
}

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	w, stub, _ := newTestWrapper(t)
	props := cmis.NewProperties(cmis.NewIDProperty(cmis.PropObjectTypeID, "cmis:document"))

	tests := []struct {
		name  string
		call  func() error
		op    string
		check func(t *testing.T, req any)
	}{
		{
			name: "createDocument versioning state",
			call: func() error {
				_, err := w.CreateDocument(ctx, &cmis.CreateDocumentRequest{RepositoryID: "r", Properties: props})
				return err
			},
			op: "CreateDocument",
			check: func(t *testing.T, req any) {
				if got := *req.(*cmis.CreateDocumentRequest).VersioningState; got != cmis.VersioningStateMajor {
					t.Errorf("VersioningState = %q, want major", got)
				}
			},
		},
		{
			name: "checkIn major",
			call: func() error {
				_, err := w.CheckIn(ctx, &cmis.CheckInRequest{RepositoryID: "r", ObjectID: "o"})
				return err
			},
			op: "CheckIn",
			check: func(t *testing.T, req any) {
				if !*req.(*cmis.CheckInRequest).Major {
					t.Error("Major = false, want true")
				}
			},
		},
		{
			name: "latest version major",
			call: func() error {
				_, err := w.GetPropertiesOfLatestVersion(ctx, &cmis.GetPropertiesOfLatestVersionRequest{RepositoryID: "r", VersionSeriesID: "vs"})
				return err
			},
			op: "GetPropertiesOfLatestVersion",
			check: func(t *testing.T, req any) {
				if *req.(*cmis.GetPropertiesOfLatestVersionRequest).Major {
					t.Error("Major = true, want false")
				}
			},
		},
		{
			name: "deleteObject all versions",
			call: func() error { return w.DeleteObject(ctx, &cmis.DeleteObjectRequest{RepositoryID: "r", ObjectID: "o"}) },
			op:   "DeleteObject",
			check: func(t *testing.T, req any) {
				if !*req.(*cmis.DeleteObjectRequest).AllVersions {
					t.Error("AllVersions = false, want true")
				}
			},
		},
		{
			name: "deleteTree",
			call: func() error {
				_, err := w.DeleteTree(ctx, &cmis.DeleteTreeRequest{RepositoryID: "r", FolderID: "f"})
				return err
			},
			op: "DeleteTree",
			check: func(t *testing.T, req any) {
				r := req.(*cmis.DeleteTreeRequest)
				if !*r.AllVersions || *r.UnfileObjects != cmis.UnfileObjectsDelete || *r.ContinueOnFailure {
					t.Errorf("AllVersions = %v, UnfileObjects = %q, ContinueOnFailure = %v", *r.AllVersions, *r.UnfileObjects, *r.ContinueOnFailure)
				}
			},
		},
		{
			name: "applyAcl propagation",
			call: func() error {
				_, err := w.ApplyACL(ctx, &cmis.ApplyACLRequest{RepositoryID: "r", ObjectID: "o"})
				return err
			},
			op: "ApplyACL",
			check: func(t *testing.T, req any) {
				if got := *req.(*cmis.ApplyACLRequest).ACLPropagation; got != cmis.ACLPropagationRepositoryDetermined {
					t.Errorf("ACLPropagation = %q, want repositorydetermined", got)
				}
			},
		},
		{
			name: "getAcl basic permissions",
			call: func() error {
				_, err := w.GetACL(ctx, &cmis.GetACLRequest{RepositoryID: "r", ObjectID: "o"})
				return err
			},
			op: "GetACL",
			check: func(t *testing.T, req any) {
				if !*req.(*cmis.GetACLRequest).OnlyBasicPermissions {
					t.Error("OnlyBasicPermissions = false, want true")
				}
			},
		},
		{
			name: "relationship direction",
			call: func() error {
				_, err := w.GetObjectRelationships(ctx, &cmis.GetObjectRelationshipsRequest{RepositoryID: "r", ObjectID: "o"})
				return err
			},
			op: "GetObjectRelationships",
			check: func(t *testing.T, req any) {
				r := req.(*cmis.GetObjectRelationshipsRequest)
				if *r.RelationshipDirection != cmis.RelationshipDirectionSource {
					t.Errorf("RelationshipDirection = %q, want source", *r.RelationshipDirection)
				}
				if *r.MaxItems != 25 || *r.SkipCount != 0 {
					t.Errorf("MaxItems = %d, SkipCount = %d, want 25, 0", *r.MaxItems, *r.SkipCount)
				}
			},
		},
		{
			name: "type children paging",
			call: func() error {
				_, err := w.GetTypeChildren(ctx, &cmis.GetTypeChildrenRequest{RepositoryID: "r"})
				return err
			},
			op: "GetTypeChildren",
			check: func(t *testing.T, req any) {
				r := req.(*cmis.GetTypeChildrenRequest)
				if *r.MaxItems != 50 || *r.SkipCount != 0 || *r.IncludePropertyDefinitions {
					t.Errorf("MaxItems = %d, SkipCount = %d, IncludePropertyDefinitions = %v", *r.MaxItems, *r.SkipCount, *r.IncludePropertyDefinitions)
				}
			},
		},
		{
			name: "type descendants depth",
			call: func() error {
				_, err := w.GetTypeDescendants(ctx, &cmis.GetTypeDescendantsRequest{RepositoryID: "r"})
				return err
			},
			op: "GetTypeDescendants",
			check: func(t *testing.T, req any) {
				if got := *req.(*cmis.GetTypeDescendantsRequest).Depth; got != 3 {
					t.Errorf("Depth = %d, want 3", got)
				}
			},
		},
		{
			name: "setContentStream overwrite",
			call: func() error {
				_, err := w.SetContentStream(ctx, &cmis.SetContentStreamRequest{RepositoryID: "r", ObjectID: "o", ContentStream: &cmis.ContentStream{Length: -1}})
				return err
			},
			op: "SetContentStream",
			check: func(t *testing.T, req any) {
				if !*req.(*cmis.SetContentStreamRequest).OverwriteFlag {
					t.Error("OverwriteFlag = false, want true")
				}
			},
		},
		{
			name: "addObjectToFolder all versions",
			call: func() error {
				return w.AddObjectToFolder(ctx, &cmis.AddObjectToFolderRequest{RepositoryID: "r", ObjectID: "o", FolderID: "f"})
			},
			op: "AddObjectToFolder",
			check: func(t *testing.T, req any) {
				if !*req.(*cmis.AddObjectToFolderRequest).AllVersions {
					t.Error("AllVersions = false, want true")
				}
			},
		},
		{
			name: "explicit values are kept",
			call: func() error {
				_, err := w.GetChildren(ctx, &cmis.GetChildrenRequest{
					RepositoryID:            "r",
					FolderID:                "f",
					IncludeAllowableActions: cmis.BoolPtr(true),
					RenditionFilter:         func() *string { s := "*"; return &s }(),
					MaxItems:                cmis.Int64Ptr(3),
					SkipCount:               cmis.Int64Ptr(6),
				})
				return err
			},
			op: "GetChildren",
			check: func(t *testing.T, req any) {
				r := req.(*cmis.GetChildrenRequest)
				if !*r.IncludeAllowableActions || *r.RenditionFilter != "*" || *r.MaxItems != 3 || *r.SkipCount != 6 {
					t.Errorf("explicit values changed: %v %q %d %d", *r.IncludeAllowableActions, *r.RenditionFilter, *r.MaxItems, *r.SkipCount)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("call error = %v", err)
			}
			req := stub.LastRequest(tt.op)
			if req == nil {
				t.Fatalf("wrapped %s was not called", tt.op)
			}
			tt.check(t, req)
		})
	}
}

func TestNormalizeError(t *testing.T) {
	w, _, logger := newTestWrapper(t)

	cerr := cmis.NewObjectNotFoundError("gone")
	if got := w.normalizeError("op", cerr); got != cerr {
		t.Errorf("normalizeError(cmis error) = %v, want it unchanged", got)
	}
	if got := w.normalizeError("op", fmt.Errorf("loading: %w", cerr)); got != cerr {
		t.Errorf("normalizeError(wrapped cmis error) = %v, want the cmis error", got)
	}
	if len(logger.Entries()) != 0 {
		t.Errorf("CMIS errors were logged: %+v", logger.Entries())
	}

	if got := w.normalizeError("op", nil); !cmis.IsRuntime(got) {
		t.Errorf("normalizeError(nil) = %v, want runtime error", got)
	}
}

func TestGetObject_ForeignError(t *testing.T) {
	ctx := context.Background()
	w, stub, logger := newTestWrapper(t)
	boom := errors.New("disk on fire")
	stub.SetError("GetObject", boom)

	_, err := w.GetObject(ctx, &cmis.GetObjectRequest{RepositoryID: "r", ObjectID: "o"})
	if !cmis.IsRuntime(err) {
		t.Fatalf("GetObject() error = %v, want runtime error", err)
	}
	if err.Error() != "disk on fire" {
		t.Errorf("error message = %q, want %q", err.Error(), "disk on fire")
	}
	if !errors.Is(err, boom) {
		t.Error("runtime error does not wrap the original error")
	}

	warnings := logger.EntriesAt("WARN")
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if op := warnings[0].Attr("operation"); op != "getObject" {
		t.Errorf("warning operation = %v, want getObject", op)
	}
}

func TestGetObject_CMISErrorPassesThrough(t *testing.T) {
	ctx := context.Background()
	w, stub, logger := newTestWrapper(t)
	conflict := cmis.NewUpdateConflictError("stale change token")
	stub.SetError("UpdateProperties", conflict)

	_, err := w.UpdateProperties(ctx, &cmis.UpdatePropertiesRequest{RepositoryID: "r", ObjectID: "o", Properties: cmis.NewProperties()})
	if err != conflict {
		t.Errorf("UpdateProperties() error = %v, want the service's error", err)
	}
	if len(logger.EntriesAt("WARN")) != 0 {
		t.Error("CMIS error was logged as a warning")
	}
}

func TestResultsAreReturned(t *testing.T) {
	ctx := context.Background()
	w, stub, _ := newTestWrapper(t)
	obj := &cmis.ObjectData{Properties: cmis.NewProperties(cmis.NewIDProperty(cmis.PropObjectID, "o"))}
	stub.SetResult("GetObject", obj)

	got, err := w.GetObject(ctx, &cmis.GetObjectRequest{RepositoryID: "r", ObjectID: "o"})
	if err != nil {
		t.Fatalf("GetObject() error = %v", err)
	}
	if got.ID() != "o" {
		t.Errorf("ID() = %q, want %q", got.ID(), "o")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !stub.Closed() {
		t.Error("Close() did not close the wrapped service")
	}
}
