package screenshot

import (
	"bytes"
	"context"
	"io/ioutil"

	"github.com/TfGMEnterprise/departure-board/repository"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// S3ImageStore keeps the image as a single object, for boards that fetch it
// from a bucket or CDN.
type S3ImageStore struct {
	Client s3iface.S3API
	Bucket string
	Key    string
}

func (ss *S3ImageStore) Put(ctx context.Context, png []byte) error {
	if _, err := ss.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(ss.Bucket),
		Key:          aws.String(ss.Key),
		Body:         bytes.NewReader(png),
		ContentType:  aws.String("image/png"),
		CacheControl: aws.String("no-cache"),
	}); err != nil {
		return errors.Wrapf(err, "cannot put s3://%s/%s", ss.Bucket, ss.Key)
	}
	return nil
}

func (ss *S3ImageStore) Get(ctx context.Context) ([]byte, error) {
	obj, err := ss.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ss.Bucket),
		Key:    aws.String(ss.Key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, repository.ErrImageNotFound
		}
		return nil, errors.Wrapf(err, "cannot get s3://%s/%s", ss.Bucket, ss.Key)
	}
	defer obj.Body.Close()

	png, err := ioutil.ReadAll(obj.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read s3://%s/%s", ss.Bucket, ss.Key)
	}

	return png, nil
}
