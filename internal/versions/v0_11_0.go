package versions

import (
	"context"
	"regexp"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/modifier"
	"github.com/zubzet/tooling/internal/upgrade"
)

// lineEnd matches any single line terminator.
const lineEnd = `(?:\r\n|\n|\r)`

// Mail variables after which CONFIG_MAIL_SECURITY is inserted, in order of preference.
var mailAnchors = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^([ \t]*)CONFIG_MAIL_PASSWORD:[ \t]*.*` + lineEnd),
	regexp.MustCompile(`(?m)^([ \t]*)CONFIG_MAIL_USER:[ \t]*.*` + lineEnd),
	regexp.MustCompile(`(?m)^([ \t]*)## Mailer[^\r\n]*` + lineEnd),
}

var (
	requireMain     = regexp.MustCompile(`(?mi)^[ \t]*require(?:_once)?[ \t]*\(?[ \t]*["']z_framework/main\.php["'][ \t]*\)?[ \t]*;[ \t]*(?:` + lineEnd + `|$)`)
	requireAutoload = regexp.MustCompile(`(?mi)^[ \t]*require(?:_once)?\s*\(?\s*['"]vendor/autoload\.php['"]\s*\)?\s*;[ \t]*` + lineEnd + `?`)
	chdirCall       = regexp.MustCompile(`(?mi)^[ \t]*chdir\([^;]*\);[ \t]*` + lineEnd)
)

// v0110 moves the framework from a git submodule to Composer.
func v0110(ctx context.Context, v *upgrade.Version) error {
	settings, err := modifier.NewSettings(v, "mail-settings")
	if err != nil {
		return err
	}
	settings.AddPropertyAfter("mail_security", "tls", "mail_smtp")
	if err := settings.Save(); err != nil {
		return err
	}

	docker := modifier.NewFileContent(v, "mail-docker")
	docker.OptionalIfNotFound()
	if err := docker.Find("docker-compose-base.yml", "packaging"); err != nil {
		return err
	}
	docker.ShouldChangeIfNotIncludes("CONFIG_MAIL_SECURITY")
	docker.AutomateChange(insertMailSecurity)
	if err := docker.DemandChange(ctx, messages.V0110MailSecurityExplanation); err != nil {
		return err
	}

	indexMain := modifier.NewFileContent(v, "index-main")
	if err := indexMain.Find("index.php", ""); err != nil {
		return err
	}
	indexMain.ShouldChangeIfIncludes("main.php")
	indexMain.AutomateChange(func(content string) string {
		return requireMain.ReplaceAllLiteralString(content, "")
	})
	if err := indexMain.DemandChange(ctx, messages.V0110IndexMainExplanation, messages.V0110IndexMainLine); err != nil {
		return err
	}

	indexAutoload := modifier.NewFileContent(v, "index-autoload")
	if err := indexAutoload.Find("index.php", ""); err != nil {
		return err
	}
	indexAutoload.ShouldChangeIfNotIncludes("autoload.php")
	indexAutoload.AutomateChange(insertAutoload)
	if err := indexAutoload.DemandChange(ctx, messages.V0110AutoloadExplanation, messages.V0110AutoloadLine); err != nil {
		return err
	}

	composer, err := modifier.NewComposer(v, "composer")
	if err != nil {
		return err
	}
	if err := composer.UpgradeToCurrentVersion(ctx, ""); err != nil {
		return err
	}

	install := modifier.NewFileContent(v, "composer-zubzet-install")
	if err := install.Find("composer.lock", ""); err != nil {
		return err
	}
	install.ShouldChangeIfNotIncludes(messages.ComposerPackageName)
	install.AutomateChangeCmd(messages.V0110ComposerInstallCmd)
	if err := install.DemandChange(ctx, messages.V0110ComposerInstallText); err != nil {
		return err
	}

	submodule := modifier.NewFileContent(v, "submodule-zubzet")
	submodule.OptionalIfNotFound()
	if err := submodule.Find(".gitmodules", ""); err != nil {
		return err
	}
	submodule.ShouldChangeIfIncludes("z_framework")
	submodule.ShouldChangeIfIncludes("zubzet")
	submodule.AutomateChangeCmd(messages.V0110SubmoduleRemoveCmd)
	if err := submodule.DemandChange(ctx, messages.V0110SubmoduleRemoveText); err != nil {
		return err
	}

	if err := modifier.NewFolder(v, "folder-submodule-zubzet").ShouldNotExist("z_framework"); err != nil {
		return err
	}

	return modifier.NewRemoveFile(v, "old-file-cleanup").From(".z_framework", "composer.phar", "cv.txt")
}

// insertMailSecurity adds the security variable below the first anchor found,
// reusing the anchor's indentation.
func insertMailSecurity(content string) string {
	for _, anchor := range mailAnchors {
		loc := anchor.FindStringSubmatchIndex(content)
		if loc == nil {
			continue
		}
		indent := content[loc[2]:loc[3]]
		return content[:loc[1]] + indent + messages.V0110MailSecurityEnvLine + "\n" + content[loc[1]:]
	}
	return content
}

// insertAutoload drops any existing autoload require and places one below the first chdir call.
func insertAutoload(content string) string {
	content = requireAutoload.ReplaceAllLiteralString(content, "")
	loc := chdirCall.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[1]] + "    " + messages.V0110AutoloadLine + "\n" + content[loc[1]:]
}
