package sepomex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/lacs/lacsapi/internal/common"
	sc "github.com/lacs/lacsapi/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in, optFns...)
	}
)

// Source opens the dataset. The returned string names where it was found.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, string, error)
}

// Locator probes the configured directories for the dataset file, in
// order, and falls back to the configured S3 object.
type Locator struct {
	config *sc.Config
}

func NewLocator(cfg *sc.Config) *Locator {
	return &Locator{config: cfg}
}

// Candidates lists every local path Open will try.
func (l *Locator) Candidates() []string {
	name := l.config.LocationsFileName
	if filepath.IsAbs(name) {
		return []string{name}
	}
	out := make([]string, 0, len(l.config.LocationsSearchPaths))
	for _, dir := range l.config.LocationsSearchPaths {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

func (l *Locator) Open(ctx context.Context) (io.ReadCloser, string, error) {
	probed := l.Candidates()
	for _, p := range probed {
		fi, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %v", common.ErrImport, p, err)
		}
		if fi.IsDir() {
			return nil, "", fmt.Errorf("%w: %s is a directory", common.ErrImport, p)
		}

		f, err := os.Open(p)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %v", common.ErrImport, p, err)
		}
		return f, p, nil
	}

	if l.config.S3Bucket != "" {
		where := fmt.Sprintf("s3://%s/%s", l.config.S3Bucket, l.config.S3Key)
		probed = append(probed, where)

		body, err := l.openS3(ctx)
		if err == nil {
			return body, where, nil
		}
		if !isMissingObject(err) {
			return nil, "", fmt.Errorf("%w: %s: %v", common.ErrImport, where, err)
		}
	}

	return nil, "", fmt.Errorf("%w: %s not found, tried: %s",
		common.ErrSourceNotFound, l.config.LocationsFileName, strings.Join(probed, ", "))
}

func (l *Locator) s3Client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(l.config.S3Region)}
	if l.config.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			l.config.S3AccessKey,
			l.config.S3SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if l.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(l.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (l *Locator) openS3(ctx context.Context) (io.ReadCloser, error) {
	client, err := l.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.config.S3Bucket),
		Key:    aws.String(l.config.S3Key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func isMissingObject(err error) bool {
	var noKey *types.NoSuchKey
	var noBucket *types.NoSuchBucket
	return errors.As(err, &noKey) || errors.As(err, &noBucket)
}
