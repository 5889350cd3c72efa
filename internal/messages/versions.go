package messages

// 0.11.0
const (
	V0110MailSecurityExplanation = "Set the environment variable CONFIG_MAIL_SECURITY to false"
	V0110MailSecurityEnvLine     = `CONFIG_MAIL_SECURITY: "false"`
	V0110IndexMainExplanation    = "Update the index.php and remove the line:"
	V0110IndexMainLine           = `require_once "z_framework/main.php";`
	V0110AutoloadExplanation     = "Update the index.php and add the line before the framework is initialized:"
	V0110AutoloadLine            = `require_once "vendor/autoload.php";`
	V0110ComposerInstallCmd      = "composer install"
	V0110ComposerInstallText     = "Install ZubZet framework via Composer"
	V0110SubmoduleRemoveCmd      = "git rm z_framework"
	V0110SubmoduleRemoveText     = "Remove ZubZet framework as submodule"
)

// 1.0.0
const (
	V100LiteModeRemoved      = "Lite Mode has been removed."
	V100LiteModeAdvice       = "Make sure your application works without it."
	V100SitemapRemoved       = "The sitemap feature has been removed."
	V100SitemapAdvice        = "You may remove all related attributes from your application."
	V100UploadFolder         = "webroot/uploads/"
	V100SeedLegacyScript     = "z_database/seed.php"
	V100SeedScript           = "php app/Database/import.php"
	V100ExecuteCallText      = "Replace the call to $z_framework->execute() with $z_framework->handleRequest():"
	V100ExecuteCallLine      = "$z_framework->handleRequest();"
	V100UnmovedFoldersHeader = "The following top-level folders were not moved to webroot. Move any that hold public files:"
	V100UnmovedFolderFmt     = "  - %s"
)
