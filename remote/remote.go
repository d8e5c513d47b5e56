// Package remote mirrors an S3 bucket into the local album directory.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/jsigner/wallslide/util"
)

const remoteCheckInterval = time.Duration(1 * time.Hour)

// Manager keeps the album directory in sync with the contents of an S3
// bucket. Every sync that changed the directory is announced on Updated.
type Manager struct {
	client *s3.Client

	profile  string
	s3Bucket string

	albumPath string

	Updated chan bool
}

func NewManager(albumPath, profile, s3Bucket string) (*Manager, error) {
	if profile == "" {
		return nil, errors.New("no aws profile provided for remote sync")
	}
	if s3Bucket == "" {
		return nil, errors.New("no s3 bucket provided for remote sync")
	}

	// Load the Shared AWS Configuration (~/.aws/config)
	ctxCfg, cancelCfg := context.WithTimeout(context.Background(), time.Duration(3*time.Second))
	cfg, err := awsconfig.LoadDefaultConfig(
		ctxCfg,
		awsconfig.WithSharedConfigProfile(profile),
	)
	cancelCfg()
	if err != nil {
		return nil, err
	}

	return &Manager{
		client:    s3.NewFromConfig(cfg),
		profile:   profile,
		s3Bucket:  s3Bucket,
		albumPath: albumPath,
		Updated:   make(chan bool, 1),
	}, nil
}

func (m *Manager) GetS3Objects(ctx context.Context) ([]s3types.Object, error) {
	// Get the first page of results for ListObjectsV2 for a bucket
	output, err := m.client.ListObjectsV2(
		ctx,
		&s3.ListObjectsV2Input{
			Bucket: aws.String(m.s3Bucket),
		},
	)
	if err != nil {
		return nil, err
	}

	return output.Contents, nil
}

func (m *Manager) DownloadObject(ctx context.Context, name string) error {
	downloader := manager.NewDownloader(m.client)

	f, err := os.Create(filepath.Join(m.albumPath, name))
	if err != nil {
		return fmt.Errorf("unable to create file for s3 download, %s, %w", name, err)
	}
	defer f.Close()

	if _, err := downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(m.s3Bucket),
		Key:    aws.String(name),
	}); err != nil {
		return fmt.Errorf("unable to download object from s3, %s, %w", name, err)
	}
	return nil
}

func (m *Manager) getLocalFiles() (mapset.Set[string], error) {
	dirs, err := os.ReadDir(m.albumPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory, %s, %w", m.albumPath, err)
	}

	localFiles := mapset.NewSet[string]()
	for _, dir := range dirs {
		name := dir.Name()
		if !util.SupportedImage(name) {
			continue
		}
		localFiles.Add(name)
	}

	if localFiles.Cardinality() == 0 {
		slog.Info("no local files found")
	}
	return localFiles, nil
}

func (m *Manager) getRemoteFiles(ctx context.Context) (mapset.Set[string], error) {
	remoteFiles := mapset.NewSet[string]()
	objects, err := m.GetS3Objects(ctx)
	if err != nil {
		return nil, err
	}
	for _, object := range objects {
		name := aws.ToString(object.Key)
		if !util.SupportedImage(name) {
			continue
		}
		remoteFiles.Add(name)
	}

	if remoteFiles.Cardinality() == 0 {
		slog.Info("no remote files found")
	}
	return remoteFiles, nil
}

// SyncFolder makes the album directory match the bucket, downloading new
// objects and removing local files that no longer exist remotely.
func (m *Manager) SyncFolder(ctx context.Context) error {
	localFiles, err := m.getLocalFiles()
	if err != nil {
		return err
	}

	remoteFiles, err := m.getRemoteFiles(ctx)
	if err != nil {
		return err
	}

	toDelete := localFiles.Difference(remoteFiles).ToSlice()
	toDownload := remoteFiles.Difference(localFiles).ToSlice()
	if len(toDelete) > 0 {
		slog.Info("deleting local files", "count", len(toDelete), "names", toDelete)
		for _, name := range toDelete {
			filePath := filepath.Join(m.albumPath, name)
			if err := os.Remove(filePath); err != nil {
				slog.Warn("unable to remove local file", "error", err)
			}
		}
	}
	if len(toDownload) > 0 {
		slog.Info("adding files", "count", len(toDownload), "names", toDownload)
		for _, name := range toDownload {
			if err := m.DownloadObject(ctx, name); err != nil {
				slog.Warn("error while downloading s3 object", "name", name, "error", err)
				continue
			}
		}
	}

	// Only signal update if there were actual changes
	if len(toDelete) > 0 || len(toDownload) > 0 {
		select {
		case m.Updated <- true:
		default:
		}
	}
	return nil
}

func (m *Manager) Run() {
	ticker := time.NewTicker(remoteCheckInterval)

	// Initial sync
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(30*time.Minute))
	if err := m.SyncFolder(ctx); err != nil {
		slog.Warn("error while syncing with remote", "error", err)
	}
	cancel()

	for range ticker.C {
		ctx, cancel = context.WithTimeout(context.Background(), time.Duration(30*time.Minute))
		if err := m.SyncFolder(ctx); err != nil {
			slog.Warn("error while syncing with remote", "error", err)
		}
		cancel()
	}
}
