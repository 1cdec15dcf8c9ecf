package source

import (
	"encoding/json"
	"fmt"
)

// AssetKind identifies where an Asset lives.
type AssetKind int

// Asset kinds.
const (
	AssetBundled AssetKind = iota + 1 // shipped inside the binary
	AssetLocal                        // a file on the local disk
	AssetWeb                          // a remote URL
)

func (k AssetKind) String() string {
	switch k {
	case AssetBundled:
		return "bundled"
	case AssetLocal:
		return "local"
	case AssetWeb:
		return "web"
	default:
		return "unknown"
	}
}

// Asset is an immutable reference to an image. Two assets are equal when
// they have the same kind and locator, so Asset values compare with ==.
type Asset struct {
	kind    AssetKind
	locator string
}

// BundledAsset refers to a path inside the embedded definitions.
func BundledAsset(path string) Asset {
	return Asset{kind: AssetBundled, locator: path}
}

// LocalAsset refers to a file on disk.
func LocalAsset(path string) Asset {
	return Asset{kind: AssetLocal, locator: path}
}

// WebAsset refers to a remote URL.
func WebAsset(url string) Asset {
	return Asset{kind: AssetWeb, locator: url}
}

// Kind returns the asset variant.
func (a Asset) Kind() AssetKind { return a.kind }

// Locator returns the path or URL of the asset.
func (a Asset) Locator() string { return a.locator }

// IsZero reports whether a is the zero Asset.
func (a Asset) IsZero() bool { return a.kind == 0 }

// Equal reports whether a and b refer to the same image.
func (a Asset) Equal(b Asset) bool { return a == b }

func (a Asset) String() string {
	if a.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s:%s", a.kind, a.locator)
}

type assetJSON struct {
	Kind    string `json:"kind"`
	Locator string `json:"locator"`
}

// MarshalJSON encodes the asset as {"kind": ..., "locator": ...}.
func (a Asset) MarshalJSON() ([]byte, error) {
	if a.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(assetJSON{Kind: a.kind.String(), Locator: a.locator})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (a *Asset) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Asset{}
		return nil
	}
	var v assetJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.Kind {
	case "bundled":
		*a = BundledAsset(v.Locator)
	case "local":
		*a = LocalAsset(v.Locator)
	case "web":
		*a = WebAsset(v.Locator)
	default:
		return fmt.Errorf("unknown asset kind %q", v.Kind)
	}
	return nil
}

// Provider looks up assets by key. Themes are providers keyed by language
// id plus the "application" sentinel.
type Provider interface {
	GetAsset(key string) (Asset, bool)
}

// ApplicationKey is the theme entry holding the editor's own icon.
const ApplicationKey = "application"
