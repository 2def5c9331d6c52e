//go:build !android

package utils

// EnsureStorageDir 确保存档存储目录存在（非 Android 平台的空实现）
// gdata 在这些平台上会自己创建存储目录，无需预处理
func EnsureStorageDir() error {
	return nil
}
