//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 使用 Makefile 构建（推荐）：
//
//	make build-android    # Android
//	make build-ios        # iOS (仅 macOS)
//
// 手动构建：
//
//	# Android
//	make prepare-mobile && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.petspa -o build/android/petspa.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	make prepare-mobile && ebitenmobile bind -target ios -tags mobile -o build/ios/PetSpa.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/petspa/pkg/app"
	"github.com/gonewx/petspa/pkg/embedded"
	"github.com/gonewx/petspa/pkg/utils"
)

func init() {
	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// Android 上 gdata 不会预创建存储目录，
	// 必须在存档/设置管理器初始化之前准备好
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("存储目录初始化失败: %v（存档可能不可用）", err)
	}

	// 创建游戏应用，使用默认配置
	cfg := app.Config{
		Verbose:  true, // Enable verbose logging for debugging
		PetID:    "",   // 进入宠物选择菜单
		SkipMenu: false,
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
