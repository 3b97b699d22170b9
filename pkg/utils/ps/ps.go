package ps

import (
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"
)

type Disk struct {
	Free        uint64
	Total       uint64
	UsedPercent float64
}

// DiskStatus reports usage of the filesystem holding path.
func DiskStatus(path string) (Disk, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return Disk{}, err
	}

	return Disk{
		Free:        usage.Free,
		Total:       usage.Total,
		UsedPercent: usage.UsedPercent,
	}, nil
}

// DirDiskUsage sums the sizes of all regular files under path.
func DirDiskUsage(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return size, nil
}
