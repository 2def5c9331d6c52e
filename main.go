package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/petspa/pkg/app"
	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/embedded"
)

var (
	petID    = flag.String("pet", "", "直接护理指定宠物（如 cat），为空则进入选择菜单")
	skipMenu = flag.Bool("skip-menu", false, "跳过宠物选择菜单（配合 --pet 使用）")
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		PetID:    *petID,
		SkipMenu: *skipMenu,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 设置窗口属性
	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("宠物美容院 - Pet Spa")
	// 接管关闭事件，让当前场景有机会保存存档
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
