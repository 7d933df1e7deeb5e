package project

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
)

// BackupDir is the directory inside a project that holds its backups. It is never archived.
const BackupDir = "backups"

// Backup archives the project at projectPath into backups/backup_YYYYMMDD_HHMMSS.zip and returns the archive path.
func Backup(projectPath string, now time.Time) (string, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("os.Stat(%s) > %w", projectPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", projectPath)
	}

	backupDir := filepath.Join(projectPath, BackupDir)
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", backupDir, err)
	}
	archivePath := filepath.Join(backupDir, "backup_"+now.Format("20060102_150405")+".zip")
	out, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("os.OpenFile(%s) > %w", archivePath, err)
	}

	if err := writeArchive(out, projectPath); err != nil {
		_ = out.Close()
		_ = os.Remove(archivePath)
		return "", err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(archivePath)
		return "", fmt.Errorf("out.Close() > %w", err)
	}
	return archivePath, nil
}

func writeArchive(w io.Writer, root string) error {
	zw := zip.NewWriter(w)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() && d.Name() == BackupDir {
			return fs.SkipDir
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("filepath.Rel(%s) > %w", path, err)
		}
		name := filepath.ToSlash(rel)

		if d.IsDir() {
			if _, err := zw.Create(name + "/"); err != nil {
				return fmt.Errorf("zw.Create(%s/) > %w", name, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return addFile(zw, path, name)
	})
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("filepath.WalkDir(%s) > %w", root, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zw.Close() > %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("os.Stat(%s) > %w", path, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("zip.FileInfoHeader(%s) > %w", path, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("zw.CreateHeader(%s) > %w", name, err)
	}
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer src.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("io.Copy(%s) > %w", name, err)
	}
	return nil
}
