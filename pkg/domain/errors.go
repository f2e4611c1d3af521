package domain

import (
	"errors"
	"fmt"
)

// エラー種別のセンチネル。各層は fmt.Errorf("...: %w", ...) で包み、
// 呼び出し側は errors.Is で分類します。
var (
	ErrConfiguration = errors.New("設定エラー")
	ErrNotFound      = errors.New("対象が見つかりません")
	ErrGeneration    = errors.New("画像生成エラー")
	ErrProcessing    = errors.New("画像処理エラー")
	ErrIO            = errors.New("入出力エラー")
)

// ErrGeneration の細分類。いずれも errors.Is(err, ErrGeneration) が真になります。
// ErrAuthFailure だけは資格情報の問題なので ErrConfiguration にもマッチさせています。
var (
	ErrAuthFailure     = fmt.Errorf("認証失敗 (%w / %w)", ErrGeneration, ErrConfiguration)
	ErrRateLimited     = fmt.Errorf("レート制限超過: %w", ErrGeneration)
	ErrContentRejected = fmt.Errorf("コンテンツポリシーによる拒否: %w", ErrGeneration)
	ErrTimeout         = fmt.Errorf("タイムアウト: %w", ErrGeneration)
)
