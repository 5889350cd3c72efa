package versions

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/modifier"
	"github.com/zubzet/tooling/internal/upgrade"
)

// Legacy userspace folders and their place below app/.
var userspaceMoves = [][2]string{
	{"z_controllers", "app/Controllers"},
	{"z_models", "app/Models"},
	{"z_views", "app/Views"},
	{"z_database", "app/Database"},
	{"routes", "app/Routes"},
}

// Top-level entries that stay outside webroot.
var webrootExceptions = map[string]bool{
	"app": true, "webroot": true, "assets": true, "uploads": true,
	"z_framework": true, "_framework": true, ".z_framework": true,
	"z_config": true, "vendor": true, "node_modules": true,
	"packaging": true, "tests": true, "libs": true, "src": true, "examples": true,
	"Validator": true, "helper": true,
	".git": true, ".vscode": true,
}

var executeCall = regexp.MustCompile(`\$z_framework\s*->\s*execute\s*\(\s*\)\s*;`)

// v100 moves the userspace below app/ and serves the project from webroot/.
func v100(ctx context.Context, v *upgrade.Version) error {
	composer, err := modifier.NewComposer(v, "composer-zubzet")
	if err != nil {
		return err
	}
	if err := composer.UpgradeToCurrentVersion(ctx, ""); err != nil {
		return err
	}

	if err := upgradeSettings(v); err != nil {
		return err
	}
	if err := migrateUserspace(v); err != nil {
		return err
	}
	if err := setupWebroot(v); err != nil {
		return err
	}

	entry := modifier.NewFileContent(v, "index-handle-request")
	entry.OptionalIfNotFound()
	if err := entry.Find("index.php", ""); err != nil {
		return err
	}
	entry.ShouldChangeIfPattern(executeCall)
	entry.AutomateChange(func(content string) string {
		return executeCall.ReplaceAllLiteralString(content, messages.V100ExecuteCallLine)
	})
	if err := entry.DemandChange(ctx, messages.V100ExecuteCallText, messages.V100ExecuteCallLine); err != nil {
		return err
	}

	packageJSON := modifier.NewJSON(v, "app-folder-package-json")
	packageJSON.Optional()
	if err := packageJSON.From("package.json"); err != nil {
		return err
	}
	return packageJSON.Modify(func(doc *modifier.Document) (bool, error) {
		seed := doc.Get("scripts.seed")
		if !seed.Exists() || !strings.Contains(seed.String(), messages.V100SeedLegacyScript) {
			return false, nil
		}
		return true, doc.Set("scripts.seed", messages.V100SeedScript)
	})
}

func upgradeSettings(v *upgrade.Version) error {
	liteMode, err := modifier.NewSettings(v, "settings-lite-mode")
	if err != nil {
		return err
	}
	if err := liteMode.RemoveProperty("lite_mode", messages.V100LiteModeRemoved, messages.V100LiteModeAdvice); err != nil {
		return err
	}
	if err := liteMode.Save(); err != nil {
		return err
	}

	language, err := modifier.NewSettings(v, "settings-language")
	if err != nil {
		return err
	}
	for _, name := range []string{"anonymous_available_languages", "anonymous_language"} {
		if err := language.RemoveProperty(name); err != nil {
			return err
		}
	}
	if err := language.Save(); err != nil {
		return err
	}

	sitemap, err := modifier.NewSettings(v, "settings-sitemap")
	if err != nil {
		return err
	}
	if err := sitemap.RemoveProperty("sitemapPublicDefault", messages.V100SitemapRemoved, messages.V100SitemapAdvice); err != nil {
		return err
	}
	if err := sitemap.Save(); err != nil {
		return err
	}

	settings, err := modifier.NewSettings(v, "settings")
	if err != nil {
		return err
	}
	if err := settings.RemoveProperty("dedicated_mail"); err != nil {
		return err
	}
	settings.AddProperty("allow_env_config", "true")
	settings.AddProperty("execution_type", "test")
	settings.AddPropertyAfter("registerRoleIdSecondary", "", "registerRoleId")
	settings.ModifyProperty("uploadFolder", messages.V100UploadFolder)
	settings.CollapseConsecutiveEmptyRows()
	settings.AssertEmptyLastRow()
	return settings.Save()
}

func migrateUserspace(v *upgrade.Version) error {
	targets := make([]string, 0, len(userspaceMoves))
	sources := make([]string, 0, len(userspaceMoves))
	for _, move := range userspaceMoves {
		sources = append(sources, move[0])
		targets = append(targets, move[1])
	}
	sort.Strings(targets)

	if err := modifier.NewFolder(v, "folders-userspace").ShouldExist(targets...); err != nil {
		return err
	}

	userspace := modifier.NewFolderContent(v, "migration-userspace")
	for _, move := range userspaceMoves {
		if err := userspace.Move(move[0], move[1]); err != nil {
			return err
		}
	}

	router := modifier.NewIncludedFile(v, "example-router")
	if err := router.From("ExampleRouter.php"); err != nil {
		return err
	}
	if err := router.To("app/Routes"); err != nil {
		return err
	}

	return modifier.NewFolder(v, "folders-old-userspace").ShouldNotExist(sources...)
}

func setupWebroot(v *upgrade.Version) error {
	if err := modifier.NewFolder(v, "webroot-folder").ShouldExist("webroot"); err != nil {
		return err
	}

	htaccess := modifier.NewIncludedFile(v, "webroot-htaccess")
	if err := htaccess.From(".htaccess"); err != nil {
		return err
	}
	if err := htaccess.To("webroot"); err != nil {
		return err
	}
	if err := modifier.NewRemoveFile(v, "remove-old-htaccess").From(".htaccess"); err != nil {
		return err
	}

	entryPoint := modifier.NewIncludedFile(v, "webroot-entrypoint")
	if err := entryPoint.From("index.php"); err != nil {
		return err
	}
	if err := entryPoint.To("webroot"); err != nil {
		return err
	}

	if err := modifier.NewFolderContent(v, "migration-assets").MoveWithParentFolder("assets", "webroot/assets"); err != nil {
		return err
	}
	if err := reportUnmovedFolders(v); err != nil {
		return err
	}

	if err := modifier.NewFolder(v, "folder-upload").ShouldExist("webroot/uploads"); err != nil {
		return err
	}
	if err := modifier.NewFolderContent(v, "migration-uploads").Move("uploads", "webroot/uploads"); err != nil {
		return err
	}

	oldUpload := modifier.NewFolder(v, "folder-old-upload")
	if err := oldUpload.ShouldNotExist("uploads"); err != nil {
		return err
	}
	return oldUpload.ShouldNotExistIfEmpty("webroot/uploads")
}

// reportUnmovedFolders lists top-level folders that may hold public files. It never changes anything.
func reportUnmovedFolders(v *upgrade.Version) error {
	step := upgrade.NewStep(v, "webroot-candidates")
	entries, err := step.Sys().ReadDir(step.Path("."))
	if err != nil {
		return fmt.Errorf(messages.FailedReadFmt, step.Path("."), err)
	}

	legacy := make(map[string]bool, len(userspaceMoves))
	for _, move := range userspaceMoves {
		legacy[move[0]] = true
	}
	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() || webrootExceptions[entry.Name()] || legacy[entry.Name()] {
			continue
		}
		candidates = append(candidates, entry.Name())
	}
	if len(candidates) == 0 {
		return nil
	}

	p := step.Printer()
	p.Println(p.Comment(messages.V100UnmovedFoldersHeader))
	for _, name := range candidates {
		p.Printf(messages.V100UnmovedFolderFmt, name)
	}
	return nil
}
