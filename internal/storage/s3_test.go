package storage

import "testing"

func TestRangedGetOptions(t *testing.T) {
	tests := []struct {
		name       string
		byteRange  *ByteRange
		totalSize  int64
		wantHeader string
		wantLength int64
	}{
		{"nil range requests the whole object", nil, 10, "", 10},
		{"closed range", &ByteRange{Offset: 2, Count: 4}, 10, "bytes=2-5", 4},
		{"open ended from byte zero", &ByteRange{Offset: 0}, 10, "bytes=0-9", 10},
		{"open ended mid object", &ByteRange{Offset: 7}, 10, "bytes=7-9", 3},
		{"single byte at zero", &ByteRange{Offset: 0, Count: 1}, 10, "bytes=0-0", 1},
		{"open ended on empty object", &ByteRange{Offset: 0}, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, length, err := rangedGetOptions(tt.byteRange, tt.totalSize)
			if err != nil {
				t.Fatalf("rangedGetOptions: %v", err)
			}
			if got := opts.Header().Get("Range"); got != tt.wantHeader {
				t.Errorf("Range header = %q, want %q", got, tt.wantHeader)
			}
			if length != tt.wantLength {
				t.Errorf("length = %d, want %d", length, tt.wantLength)
			}
		})
	}
}

func TestResolveS3Region(t *testing.T) {
	tests := []struct {
		name     string
		region   string
		endpoint string
		want     string
	}{
		{"explicit region wins", "eu-central-1", "https://s3.us-west-2.amazonaws.com", "eu-central-1"},
		{"region from endpoint", "", "https://s3.us-west-2.amazonaws.com", "us-west-2"},
		{"region from bare endpoint", "", "s3.ap-southeast-1.amazonaws.com", "ap-southeast-1"},
		{"custom endpoint falls back to default", "", "https://minio.local:9000", defaultS3Region},
		{"nothing set falls back to default", "", "", defaultS3Region},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveS3Region(tt.region, tt.endpoint); got != tt.want {
				t.Errorf("resolveS3Region(%q, %q) = %q, want %q", tt.region, tt.endpoint, got, tt.want)
			}
		})
	}
}

func TestS3Storage_ObjectURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{
			name: "public url wins over everything",
			cfg: S3Config{
				Bucket: "assets", AccessKeyID: "ak", AccessSecretKey: "sk",
				Endpoint: "https://minio.local:9000", ForcePathStyle: true,
				PublicURL: "https://cdn.example.com",
			},
			want: "https://cdn.example.com/t1/a1/index.html",
		},
		{
			name: "custom endpoint path style",
			cfg: S3Config{
				Bucket: "assets", AccessKeyID: "ak", AccessSecretKey: "sk",
				Endpoint: "https://minio.local:9000", ForcePathStyle: true,
			},
			want: "https://minio.local:9000/assets/t1/a1/index.html",
		},
		{
			name: "custom endpoint virtual hosted",
			cfg: S3Config{
				Bucket: "assets", AccessKeyID: "ak", AccessSecretKey: "sk",
				Endpoint: "https://storage.example.com",
			},
			want: "https://assets.storage.example.com/t1/a1/index.html",
		},
		{
			name: "aws path style",
			cfg: S3Config{
				Bucket: "assets", AccessKeyID: "ak", AccessSecretKey: "sk",
				Region: "us-west-2", ForcePathStyle: true,
			},
			want: "https://s3.us-west-2.amazonaws.com/assets/t1/a1/index.html",
		},
		{
			name: "aws virtual hosted",
			cfg: S3Config{
				Bucket: "assets", AccessKeyID: "ak", AccessSecretKey: "sk",
				Region: "us-west-2",
			},
			want: "https://assets.s3.us-west-2.amazonaws.com/t1/a1/index.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewS3Storage(&tt.cfg)
			if err != nil {
				t.Fatalf("NewS3Storage: %v", err)
			}
			if got := s.ObjectURL("t1/a1/index.html"); got != tt.want {
				t.Errorf("ObjectURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewS3Storage_RequiresRegionOrEndpoint(t *testing.T) {
	_, err := NewS3Storage(&S3Config{Bucket: "b", AccessKeyID: "ak", AccessSecretKey: "sk"})
	if err == nil {
		t.Fatal("expected error when neither region nor endpoint is set")
	}
}
