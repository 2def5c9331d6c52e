package game

import "log"

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	// SelectedPetID 菜单里最后选中的宠物，进入美容会话时使用
	SelectedPetID string

	// 本次运行的会话统计（不持久化，存档里的数据见 SaveManager）
	SessionsPlayed int // 本次运行完成的会话数
	LastStars      int // 最近一次会话的星级，0 表示尚未完成过会话

	settingsManager *SettingsManager
	saveManager     *SaveManager
	audioManager    *AudioManager
	spaStrings      *SpaStrings
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = &GameState{}
	}
	return globalGameState
}

// SelectPet 记录菜单选中的宠物
func (gs *GameState) SelectPet(petID string) {
	gs.SelectedPetID = petID
}

// GetSelectedPet 返回最后选中的宠物 ID，空字符串表示尚未选择
func (gs *GameState) GetSelectedPet() string {
	return gs.SelectedPetID
}

// RecordOutcome 记录一次完成的会话结果
// 只统计正常结束的会话，取消的会话不计入
func (gs *GameState) RecordOutcome(stars int) {
	if stars <= 0 {
		return
	}
	gs.SessionsPlayed++
	gs.LastStars = stars
}

// SetSettingsManager 注入设置管理器（应用启动时调用）
func (gs *GameState) SetSettingsManager(sm *SettingsManager) {
	gs.settingsManager = sm
}

// GetSettingsManager 返回设置管理器
// 未注入时降级为仅内存的设置管理器（verify 工具和测试路径）
func (gs *GameState) GetSettingsManager() *SettingsManager {
	if gs.settingsManager == nil {
		log.Printf("[GameState] SettingsManager 未注入，使用内存降级模式")
		gs.settingsManager, _ = NewSettingsManager(nil)
	}
	return gs.settingsManager
}

// SetSaveManager 注入存档管理器（应用启动时调用）
func (gs *GameState) SetSaveManager(sm *SaveManager) {
	gs.saveManager = sm
}

// GetSaveManager 返回存档管理器
// 未注入时降级为仅内存的存档管理器（verify 工具和测试路径）
func (gs *GameState) GetSaveManager() *SaveManager {
	if gs.saveManager == nil {
		log.Printf("[GameState] SaveManager 未注入，使用内存降级模式")
		gs.saveManager, _ = NewSaveManager(nil)
	}
	return gs.saveManager
}

// SetAudioManager 注入音频管理器（应用启动时调用）
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器，可能为 nil（无音频环境）
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// SetSpaStrings 注入界面文案管理器（应用启动时调用）
func (gs *GameState) SetSpaStrings(ss *SpaStrings) {
	gs.spaStrings = ss
}

// GetSpaStrings 返回界面文案管理器
// 未注入时降级为内置文案（verify 工具和测试路径）
func (gs *GameState) GetSpaStrings() *SpaStrings {
	if gs.spaStrings == nil {
		gs.spaStrings = DefaultSpaStrings()
	}
	return gs.spaStrings
}
