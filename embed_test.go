package main

import (
	"crypto/md5"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// TestEmbeddedDataMatchesDisk 逐文件比对嵌入资源与磁盘上的 data/ 目录。
// all:data 指令应把 data/ 下的所有文件原样嵌入，若有遗漏或内容不一致，
// 打包后的程序会加载到与开发时不同的配置。
func TestEmbeddedDataMatchesDisk(t *testing.T) {
	count := 0
	err := filepath.WalkDir("data", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		count++

		diskData, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("read disk file %s: %v", path, err)
			return nil
		}
		embedData, err := fs.ReadFile(dataFS, filepath.ToSlash(path))
		if err != nil {
			t.Errorf("file %s missing from embedded data: %v", path, err)
			return nil
		}
		if md5.Sum(diskData) != md5.Sum(embedData) {
			t.Errorf("file %s: embedded content differs from disk (%d vs %d bytes)",
				path, len(embedData), len(diskData))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk data/: %v", err)
	}
	if count == 0 {
		t.Fatal("no files found under data/")
	}
}

// TestEmbeddedDataRequiredFiles 确认启动所需的核心数据文件都在嵌入资源中
func TestEmbeddedDataRequiredFiles(t *testing.T) {
	required := []string{
		"data/config/spa.yaml",
		"data/cosmetics.yaml",
		"data/particles.yaml",
		"data/strings.txt",
	}
	for _, path := range required {
		if _, err := fs.ReadFile(dataFS, path); err != nil {
			t.Errorf("required file %s not embedded: %v", path, err)
		}
	}

	pets, err := fs.Glob(dataFS, "data/pets/*.yaml")
	if err != nil {
		t.Fatalf("glob embedded pets: %v", err)
	}
	if len(pets) == 0 {
		t.Error("no pet definitions embedded under data/pets/")
	}
}
