package game

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/gonewx/petspa/pkg/embedded"
)

// defaultSpaStrings 内置文案表
// data/strings.txt 缺失或缺键时逐键回退到这里，保证 HUD 永不缺字
var defaultSpaStrings = map[string]string{
	"MENU_TITLE":      "P E T   S P A",
	"MENU_SUBTITLE":   "PICK A FRIEND TO PAMPER",
	"MENU_SOUND_ON":   "SOUND ON",
	"MENU_SOUND_OFF":  "SOUND OFF",
	"MENU_NOT_WASHED": "NOT WASHED YET",
	"MENU_WASH_COUNT": "WASHED %dx",
	"MENU_WARDROBE":   "WARDROBE %d/%d UNLOCKED",

	"PHASE_TITLE_WASH":    "WASH TIME",
	"PHASE_TITLE_SOAP":    "SOAP IT UP",
	"PHASE_TITLE_RINSE":   "RINSE OFF",
	"PHASE_TITLE_DRY":     "BLOW DRY",
	"PHASE_TITLE_BRUSH":   "BRUSH UP",
	"PHASE_TITLE_DRESSUP": "DRESS UP",
	"PHASE_TITLE_RESULT":  "ALL DONE",

	"PHASE_HINT_WASH":    "DRAG OVER YOUR PET TO WET EVERY SPOT",
	"PHASE_HINT_SOAP":    "SCRUB EVERY SPOT INTO A LATHER",
	"PHASE_HINT_RINSE":   "RINSE OFF ALL THE SUDS",
	"PHASE_HINT_DRY":     "DRY EVERY PATCH WITH THE BLOWER",
	"PHASE_HINT_BRUSH":   "SWIPE THE WAY THE ARROW POINTS",
	"PHASE_HINT_DRESSUP": "TAP THE RACK TO DRESS UP, THEN PRESS DONE",

	"HUD_BRUSH_COUNT":  "BRUSH %d/%d",
	"HUD_BRUSH_STREAK": "STREAK %d",
	"HUD_DONE":         "DONE",

	"RESULT_TITLE_THREE_STARS": "SQUEAKY CLEAN!",
	"RESULT_TITLE_TWO_STARS":   "ALL CLEAN!",
	"RESULT_TITLE_ONE_STAR":    "CLEAN ENOUGH",
	"RESULT_TOTAL":             "TOTAL",
	"RESULT_REWARD":            "NEW OUTFIT UNLOCKED: %s",
	"RESULT_CONTINUE":          "TAP TO CONTINUE",

	"SCORE_GREAT":  "GREAT",
	"SCORE_GOOD":   "GOOD",
	"SCORE_FAIR":   "FAIR",
	"SCORE_MISSED": "MISSED",
}

// SpaStrings 界面文案管理器
// 从 strings.txt 加载 HUD 与菜单文案，支持通过键快速查询；
// 屏幕文字受调试字体限制只含 ASCII，窗口标题不经过这里
type SpaStrings struct {
	strings map[string]string // 键 -> 文案映射
}

// NewSpaStrings 从文件加载界面文案
// 参数：
//   - filePath: strings.txt 文件路径（通常为 "data/strings.txt"）
//
// 返回：
//   - *SpaStrings: 文案管理器实例
//   - error: 如果文件读取或解析失败
//
// 文件格式：
//
//	[KEY]
//	文案内容
//
// 示例：
//
//	[PHASE_TITLE_WASH]
//	WASH TIME
func NewSpaStrings(filePath string) (*SpaStrings, error) {
	data, err := readStringsFile(filePath)
	if err != nil {
		return nil, err
	}

	ss := &SpaStrings{
		strings: make(map[string]string),
	}

	// 逐行读取并解析
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		// 跳过空行
		if strings.TrimSpace(line) == "" {
			continue
		}

		// 检查是否为键定义（格式：[KEY]）
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentKey = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		// 如果有当前键，则将该行作为值存储
		if currentKey != "" {
			ss.strings[currentKey] = line
			currentKey = "" // 重置键，准备读取下一个键值对
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read strings file %s: %w", filePath, err)
	}

	return ss, nil
}

// DefaultSpaStrings 返回只含内置文案的管理器
// 文案文件缺失（verify 工具、测试）时的降级路径
func DefaultSpaStrings() *SpaStrings {
	return &SpaStrings{strings: make(map[string]string)}
}

// readStringsFile 读取文案文件：优先嵌入资源，回退本地文件系统
func readStringsFile(filePath string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(filePath) {
		data, err := embedded.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded strings file %s: %w", filePath, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open strings file %s: %w", filePath, err)
	}
	return data, nil
}

// GetString 根据键获取文案
// 参数：
//   - key: 文案键（如 "PHASE_TITLE_WASH"）
//
// 返回：
//   - string: 对应的文案。文件未提供该键时回退内置文案，
//     内置文案也没有时返回 "[key]"（用于调试）
//
// 示例：
//
//	text := spaStrings.GetString("PHASE_TITLE_WASH")
//	// 返回："WASH TIME"
func (ss *SpaStrings) GetString(key string) string {
	if text, ok := ss.strings[key]; ok {
		return text
	}
	if text, ok := defaultSpaStrings[key]; ok {
		return text
	}
	// 键不存在时返回带方括号的键名（调试用）
	return "[" + key + "]"
}
