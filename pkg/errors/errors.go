// Package errors はパイプライン全体のエラーハンドリングを提供します。
// 学習・変換の各ステージが返す型付きエラーと、cockroachdb/errors による
// スタックトレース付きのエラー生成・判定ヘルパーを定義します。
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Apply` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("keystone: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は特徴ベクトルの次元がモデルの期待値と異なる場合のエラーです。
// 学習時と推論時のどちらでも発生し得ます。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("keystone: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// AlignmentError は特徴量コレクションとラベルコレクションの要素数が一致しない
// 場合のエラーです。位置対応（zip）が成立しないため、学習を続行できません。
type AlignmentError struct {
	Op        string
	Features  int
	Labels    int
	Partition int // -1 when the mismatch is in total cardinality
}

func (e *AlignmentError) Error() string {
	if e.Partition >= 0 {
		return fmt.Sprintf("keystone: %s: features/labels misaligned in partition %d. Features %d, labels %d", e.Op, e.Partition, e.Features, e.Labels)
	}
	return fmt.Sprintf("keystone: %s: features/labels collections misaligned. Features %d, labels %d", e.Op, e.Features, e.Labels)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *AlignmentError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("features", e.Features).
		Int("labels", e.Labels).
		Int("partition", e.Partition).
		Str("type", "AlignmentError")
}

// NewAlignmentError は新しいAlignmentErrorを作成し、スタックトレースを付与します。
func NewAlignmentError(op string, features, labels, partition int) error {
	err := &AlignmentError{Op: op, Features: features, Labels: labels, Partition: partition}
	return errors.WithStack(err)
}

// DegenerateClassError は宣言されたクラスに学習サンプルが一つも存在しない場合の
// エラーです。事前確率が log(0) となり定義できないため、学習全体を失敗させます。
type DegenerateClassError struct {
	Op    string
	Class int
}

func (e *DegenerateClassError) Error() string {
	return fmt.Sprintf("keystone: %s: class %d has no training examples. Its log prior is undefined", e.Op, e.Class)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DegenerateClassError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("class", e.Class).
		Str("type", "DegenerateClassError")
}

// NewDegenerateClassError は新しいDegenerateClassErrorを作成し、スタックトレースを付与します。
func NewDegenerateClassError(op string, class int) error {
	err := &DegenerateClassError{Op: op, Class: class}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// `ValueError`よりも具体的なバリデーションロジックの失敗を示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("keystone: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、空の特徴ベクトルに対して argmax を求めた場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("keystone: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は学習・変換ステージに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("keystone: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("keystone: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrEmptyPartition はパーティションを一つも持たないコレクションのエラーです。
	ErrEmptyPartition = New("collection has no partitions")
)
