// Where: internal/infra/templatesrc/s3.go
// What: S3-hosted template trees downloaded into memory.
// Why: Allow shared template sets to be served from a bucket instead of the binary.
package templatesrc

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru/apigen/internal/infra/envutil"
	"github.com/poruru/apigen/internal/infra/fileops"
	"github.com/spf13/afero"
)

const memRoot = "/templates"

// S3API is the subset of the S3 client used to download a template prefix.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3ClientFactory builds S3 clients.
type S3ClientFactory interface {
	S3(ctx context.Context) (S3API, error)
}

type awsS3Factory struct{}

// S3 builds a client from the default AWS configuration chain. APIGEN_S3_ENDPOINT
// points it at an S3-compatible endpoint; APIGEN_S3_ACCESS_KEY and
// APIGEN_S3_SECRET_KEY override credentials for such endpoints.
func (awsS3Factory) S3(ctx context.Context) (S3API, error) {
	opts := []func(*config.LoadOptions) error{}
	if region := os.Getenv("AWS_REGION"); region == "" {
		opts = append(opts, config.WithRegion("us-east-1"))
	}
	accessKey := envutil.GetHostEnv("S3_ACCESS_KEY")
	secretKey := envutil.GetHostEnv("S3_SECRET_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := envutil.GetHostEnv("S3_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
	return client, nil
}

// ParseS3Ref splits s3://bucket/prefix into bucket and a prefix without
// leading slash. A non-empty prefix always ends with "/".
func ParseS3Ref(ref string) (bucket, prefix string, err error) {
	rest := strings.TrimPrefix(strings.TrimSpace(ref), s3Scheme)
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("invalid s3 template source %q: bucket is required", ref)
	}
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return bucket, prefix, nil
}

func (r Resolver) openS3(ctx context.Context, ref string) (Tree, error) {
	if r.S3 == nil {
		return Tree{}, fmt.Errorf("s3 template sources are not configured")
	}
	bucket, prefix, err := ParseS3Ref(ref)
	if err != nil {
		return Tree{}, err
	}
	client, err := r.S3.S3(ctx)
	if err != nil {
		return Tree{}, err
	}

	mem := afero.NewMemMapFs()
	if err := fileops.EnsureDir(mem, memRoot); err != nil {
		return Tree{}, err
	}

	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	count := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return Tree{}, fmt.Errorf("list s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			rel := strings.TrimPrefix(key, prefix)
			if rel == "" || strings.HasSuffix(rel, "/") {
				continue
			}
			if err := downloadObject(ctx, client, bucket, key, mem, path.Join(memRoot, rel)); err != nil {
				return Tree{}, err
			}
			count++
		}
	}
	if count == 0 {
		return Tree{}, fmt.Errorf("no templates found under %s", ref)
	}
	return Tree{Fs: afero.NewReadOnlyFs(mem), Root: memRoot, Origin: ref}, nil
}

func downloadObject(ctx context.Context, client S3API, bucket, key string, dst afero.Fs, target string) error {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return fileops.WriteFile(dst, target, data)
}
