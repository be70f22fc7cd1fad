package config

type AssetConfig interface {
	GetS3Region() string
	GetS3Bucket() string
	GetS3Endpoint() string
	GetS3AccessKey() string
	GetS3SecretKey() string
}

type Assets struct{}

var _ AssetConfig = Assets{}

func (Assets) GetS3Region() string {
	return GetEnv("S3_REGION", "us-east-1")
}

func (Assets) GetS3Bucket() string {
	return GetEnv("S3_BUCKET", "blog-images")
}

// GetS3Endpoint returns a custom S3 endpoint (e.g. a MinIO instance).
// Empty means the default AWS endpoint for the region.
func (Assets) GetS3Endpoint() string {
	return GetEnv("S3_ENDPOINT", "")
}

func (Assets) GetS3AccessKey() string {
	return GetEnv("S3_ACCESS_KEY", "")
}

func (Assets) GetS3SecretKey() string {
	return GetEnv("S3_SECRET_KEY", "")
}
