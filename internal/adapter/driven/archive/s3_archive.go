package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// ObjectPutter is the subset of the S3 client used by the archive.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// IdentityGetter is the subset of the STS client used by the archive.
type IdentityGetter interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// S3Archive grava uma cópia de cada relatório exportado em um bucket S3.
type S3Archive struct {
	bucket   string
	prefix   string
	objects  ObjectPutter
	identity IdentityGetter
	now      func() time.Time
}

// NewS3Archive loads the AWS configuration for the archive profile and region and
// builds the S3 and STS clients.
func NewS3Archive(ctx context.Context, cfg types.ArchiveConfig) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is not configured")
	}
	awsCfg, err := loadAWSConfig(ctx, cfg.Profile, cfg.Region)
	if err != nil {
		return nil, err
	}
	return NewS3ArchiveWithClients(cfg.Bucket, cfg.Prefix, s3.NewFromConfig(awsCfg), sts.NewFromConfig(awsCfg)), nil
}

// NewS3ArchiveWithClients builds an archive on top of existing clients.
func NewS3ArchiveWithClients(bucket, prefix string, objects ObjectPutter, identity IdentityGetter) *S3Archive {
	return &S3Archive{
		bucket:   bucket,
		prefix:   prefix,
		objects:  objects,
		identity: identity,
		now:      time.Now,
	}
}

var _ repository.ArchiveRepository = (*S3Archive)(nil)

func loadAWSConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}
	return cfg, nil
}

// Store uploads report and returns its s3:// location.
func (a *S3Archive) Store(ctx context.Context, report entity.RenderedReport) (string, error) {
	key := a.Key(report)

	metadata := map[string]string{"format": string(report.Format)}
	if report.Reference != "" {
		metadata["reference"] = report.Reference
	}

	_, err := a.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(report.Content),
		ContentType: aws.String(report.ContentType),
		Metadata:    metadata,
	})
	if err != nil {
		return "", fmt.Errorf("error archiving report to s3://%s/%s: %w", a.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}

// Key returns the object key of report: prefix/YYYY/MM/DD/<reference>-<filename>.
func (a *S3Archive) Key(report entity.RenderedReport) string {
	name := report.Filename
	if name == "" {
		name = "report." + report.Format.Extension()
	}
	if report.Reference != "" {
		name = report.Reference + "-" + name
	}
	return path.Join(strings.Trim(a.prefix, "/"), a.now().UTC().Format("2006/01/02"), name)
}

// Identity returns the ARN of the caller, used to check credentials at startup.
func (a *S3Archive) Identity(ctx context.Context) (string, error) {
	out, err := a.identity.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity: %w", err)
	}
	return aws.ToString(out.Arn), nil
}
