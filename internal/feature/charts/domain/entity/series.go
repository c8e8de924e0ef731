// Package entity はチャート作図のドメインモデルを定義します。
package entity

import "time"

// KeyKind は系列キーの種別（カテゴリラベルまたはタイムスタンプ）を表します。
type KeyKind int

const (
	// KindCategory はカテゴリラベルのキー種別です。
	KindCategory KeyKind = iota
	// KindTime はタイムスタンプのキー種別です。
	KindTime
)

// Key は系列の1観測点を識別するキーです。
// Kind が KindCategory のとき Label が、KindTime のとき Time が有効です。
type Key struct {
	Kind  KeyKind
	Label string
	Time  time.Time
}

// CategoryKey はカテゴリラベルのキーを生成します。
func CategoryKey(label string) Key {
	return Key{Kind: KindCategory, Label: label}
}

// TimeKey はタイムスタンプのキーを生成します。
func TimeKey(t time.Time) Key {
	return Key{Kind: KindTime, Time: t}
}

// String はキーの表示用文字列を返します。時刻キーは日付形式で整形されます。
func (k Key) String() string {
	if k.Kind == KindTime {
		return k.Time.UTC().Format("2006-01-02")
	}
	return k.Label
}

// Less はキーの昇順比較を行います。時刻キーは時刻順、カテゴリキーはラベル順です。
func (k Key) Less(other Key) bool {
	if k.Kind == KindTime {
		return k.Time.Before(other.Time)
	}
	return k.Label < other.Label
}

// Equal は2つのキーが同一観測点を指すかを返します。
func (k Key) Equal(other Key) bool {
	if k.Kind != other.Kind {
		return false
	}
	if k.Kind == KindTime {
		return k.Time.Equal(other.Time)
	}
	return k.Label == other.Label
}

// Value は数値観測値です。Valid が false のとき欠測を表します。
// 欠測はゼロとは区別され、描画時には空白（ギャップ）になります。
type Value struct {
	Float64 float64
	Valid   bool
}

// Number は有効な観測値を生成します。
func Number(f float64) Value {
	return Value{Float64: f, Valid: true}
}

// Missing は欠測値を生成します。
func Missing() Value {
	return Value{}
}

// Series は (キー, 値) ペアの順序付き列です。
// Keys と Values は常に同じ長さで、同じ添字が1観測点に対応します。
type Series struct {
	Name   string
	Keys   []Key
	Values []Value
}

// ValidCount は欠測を除いた観測値の個数を返します。
func (s Series) ValidCount() int {
	n := 0
	for _, v := range s.Values {
		if v.Valid {
			n++
		}
	}
	return n
}

// HasTimeKeys は系列に時刻キーが1つでも含まれるかを返します。
func (s Series) HasTimeKeys() bool {
	for _, k := range s.Keys {
		if k.Kind == KindTime {
			return true
		}
	}
	return false
}

// MultiSeries は名前付き系列の順序付き集合です。
// 系列名は一意で、全系列が概念上ひとつのキー領域を共有しますが、
// 整列済みであるとは限りません。
type MultiSeries []Series

// AlignedMultiSeries は共有キー列の上に再表現された MultiSeries です。
// 全系列の Keys は同一で、欠測は明示的にマークされます。
// Excluded には有効な観測値を1つも持たなかった系列名が記録されます。
type AlignedMultiSeries struct {
	Keys     []Key
	Series   []Series
	Excluded []string
}
