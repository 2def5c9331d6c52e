// Package config 提供宠物水疗的全部内容配置：
// 水疗参数（spa.yaml）、宠物模型（pets/*.yaml）、饰品目录（cosmetics.yaml）
// 和粒子类别（particles.yaml）。
//
// 所有配置均为 YAML 格式，加载流程统一为：读取 → 解析 → 填默认值 → 校验。
// 发布版本中配置通过根目录 embed.go 嵌入进二进制；开发工具（cmd/*）
// 直接从工作目录读取，因此读取逻辑对两种来源做了兼容。
package config

import (
	"fmt"
	"os"

	"github.com/gonewx/petspa/pkg/embedded"
)

// readConfigFile 读取一个配置文件的原始内容
//
// 优先从嵌入资源读取（正式运行路径）；当 embedded 未初始化或
// 文件不在嵌入资源中时，回退到本地文件系统（cmd 工具和测试路径）。
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded config %s: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return data, nil
}

// listConfigFiles 枚举目录下所有 YAML 配置文件
//
// 与 readConfigFile 一致：优先嵌入资源，回退文件系统。
// 返回的路径保持传入目录的前缀，可直接再交给 readConfigFile。
func listConfigFiles(dir string) ([]string, error) {
	pattern := dir + "/*.yaml"

	if embedded.IsInitialized() {
		if files, err := embedded.Glob(pattern); err == nil && len(files) > 0 {
			return files, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) > 5 && name[len(name)-5:] == ".yaml" {
			files = append(files, dir+"/"+name)
		}
	}
	return files, nil
}
