// Package metrics は分類パイプラインの評価指標を提供します。
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/vijaydialani/keystone/pkg/errors"
)

// Accuracy は正解率（正しく分類された例の割合）を計算する
func Accuracy(yTrue, yPred []int) (float64, error) {
	// 入力検証
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label slice")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(yPred), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionMatrix は numClasses×numClasses の混同行列を計算する
// 行が正解クラス、列が予測クラスに対応する
func ConfusionMatrix(yTrue, yPred []int, numClasses int) (*mat.Dense, error) {
	// 入力検証
	n := len(yTrue)
	if n == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty label slice")
	}
	if len(yPred) != n {
		return nil, errors.NewDimensionError("ConfusionMatrix", n, len(yPred), 0)
	}
	if numClasses <= 0 {
		return nil, errors.NewValidationError("numClasses", "must be positive", numClasses)
	}

	cm := mat.NewDense(numClasses, numClasses, nil)
	for i := 0; i < n; i++ {
		t, p := yTrue[i], yPred[i]
		if t < 0 || t >= numClasses {
			return nil, errors.NewValidationError("yTrue", "class identifier outside [0, numClasses)", t)
		}
		if p < 0 || p >= numClasses {
			return nil, errors.NewValidationError("yPred", "class identifier outside [0, numClasses)", p)
		}
		cm.Set(t, p, cm.At(t, p)+1)
	}
	return cm, nil
}
