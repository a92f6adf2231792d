package helper

import (
	"context"
	"sort"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"

	"cra_backend/internals/helpers/zlog"
)

type BackupObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ListBackups lists every object under Prefix, newest first.
func (s *OSSService) ListBackups(ctx context.Context) ([]BackupObject, error) {
	marker := oss.Marker("")
	out := make([]BackupObject, 0, 32)
	for {
		lor, err := s.Bucket.ListObjects(oss.Prefix(s.Prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, obj := range lor.Objects {
			if obj.Key == "" {
				continue
			}
			out = append(out, BackupObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastModified.After(out[j].LastModified) })
	return out, nil
}

// ReapBackups deletes backups older than retention. retention <= 0 is a no-op;
// exported history exists nowhere else once purged.
func (s *OSSService) ReapBackups(ctx context.Context, retention time.Duration, dryRun bool) (int, error) {
	if retention <= 0 {
		return 0, nil
	}
	threshold := time.Now().Add(-retention)

	objs, err := s.ListBackups(ctx)
	if err != nil {
		return 0, err
	}
	var keys []string
	for _, o := range objs {
		if o.LastModified.Before(threshold) {
			keys = append(keys, o.Key)
		}
	}
	if len(keys) == 0 {
		zlog.Info("[BACKUP-REAPER] nothing to delete", zap.Int("scanned", len(objs)), zap.String("prefix", s.Prefix))
		return 0, nil
	}
	if dryRun {
		zlog.Info("[BACKUP-REAPER] dry-run", zap.Int("would_delete", len(keys)), zap.Int("scanned", len(objs)))
		return 0, nil
	}

	deleted := 0
	for i := 0; i < len(keys); i += 1000 {
		end := i + 1000
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[i:end]
		if err := s.DeleteObjects(ctx, batch); err != nil {
			zlog.Error("[BACKUP-REAPER] delete batch failed", zap.Int("from", i), zap.Int("to", end), zap.Error(err))
			continue
		}
		deleted += len(batch)
	}
	zlog.Info("[BACKUP-REAPER] done", zap.Int("deleted", deleted), zap.String("prefix", s.Prefix))
	return deleted, nil
}
