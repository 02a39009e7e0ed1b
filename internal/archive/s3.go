package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Client is the subset of the S3 API the archive uses.
type S3Client interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Options configures an S3 client.
type S3Options struct {
	Region          string
	Endpoint        string // for S3-compatible services; enables path-style addressing
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client loads the AWS configuration and creates a client. Static
// credentials are used when both keys are set, the default chain otherwise.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Archive stores snapshots as objects below an optional key prefix:
//
//	s3://<bucket>/<prefix>/<repositoryID>/<created>_<id>.json
type S3Archive struct {
	codec
	name     string
	bucket   string
	prefix   string
	client   S3Client
	uploader *manager.Uploader
}

// NewS3Archive creates an archive on bucket using client.
func NewS3Archive(name, bucket, prefix string, client S3Client) (*S3Archive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 archive requires a bucket")
	}
	if client == nil {
		return nil, fmt.Errorf("s3 archive requires a client")
	}
	return &S3Archive{
		name:     name,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

func (a *S3Archive) Name() string {
	return a.name
}

func (a *S3Archive) objectKey(key string) string {
	if a.prefix == "" {
		return key
	}
	return path.Join(a.prefix, key)
}

// PutSnapshot uploads s. Large snapshots are sent as multipart uploads.
func (a *S3Archive) PutSnapshot(ctx context.Context, s *Snapshot) error {
	data, err := a.encode(s)
	if err != nil {
		return err
	}
	_, err = a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(a.objectKey(snapshotKey(s))),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("uploading snapshot %s: %w", s.ID, err)
	}
	return nil
}

func (a *S3Archive) GetSnapshot(ctx context.Context, repositoryID, id string) (*Snapshot, error) {
	return a.get(ctx, repositoryID, id)
}

func (a *S3Archive) LatestSnapshot(ctx context.Context, repositoryID string) (*Snapshot, error) {
	return a.get(ctx, repositoryID, "")
}

func (a *S3Archive) get(ctx context.Context, repositoryID, id string) (*Snapshot, error) {
	infos, err := a.ListSnapshots(ctx, repositoryID)
	if err != nil {
		return nil, err
	}
	info, err := findInfo(infos, id)
	if err != nil {
		return nil, err
	}

	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.objectKey(keyForInfo(repositoryID, info))),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("downloading snapshot %s: %w", info.ID, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", info.ID, err)
	}
	return a.decode(data)
}

func (a *S3Archive) ListSnapshots(ctx context.Context, repositoryID string) ([]SnapshotInfo, error) {
	prefix := a.objectKey(repositoryPrefix(repositoryID))
	if a.prefix != "" {
		// path.Join drops the trailing slash.
		prefix += "/"
	}

	var names []string
	p := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing snapshots: %w", err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if !strings.Contains(name, "/") {
				names = append(names, name)
			}
		}
	}
	return infosFromNames(names), nil
}

// ValidateSetup checks that the bucket exists and is accessible.
func (a *S3Archive) ValidateSetup(ctx context.Context) error {
	if _, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)}); err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", a.bucket, err)
	}
	return nil
}

// Compile-time check that S3Archive implements the Archive interface
var _ Archive = (*S3Archive)(nil)
