package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// rolePatterns maps asset roles to dist-dir filename patterns.
var rolePatterns = map[AssetRole]string{
	RoleStylesheet: "*.css",
	RoleScript:     "*.js",
	RoleLogo:       "logo.*",
	RoleFavicon:    "favicon.*",
}

// DiscoverAssets scans distDir and assigns files to asset roles by filename
// pattern. The first match in lexical order wins per role; roles with no
// matching file are simply absent from the result, mirroring the skip
// semantics of the upload step.
func DiscoverAssets(distDir string) (map[AssetRole]string, error) {
	entries, err := os.ReadDir(distDir)
	if err != nil {
		return nil, fmt.Errorf("read dist directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	assets := make(map[AssetRole]string)
	for _, role := range roleOrder {
		matcher, err := glob.Compile(rolePatterns[role])
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %s: %w", role, err)
		}
		for _, name := range names {
			if matcher.Match(name) {
				assets[role] = filepath.Join(distDir, name)
				break
			}
		}
	}
	return assets, nil
}
