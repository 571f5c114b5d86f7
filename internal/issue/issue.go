// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MissingEnvVarId Id = iota + 1
	PathResolutionFailedId
	PathOutsideBaseId
	ManifestEncodeFailedId
	ManifestDecodeFailedId
	FileIOFailedId
	ConfigLoadFailedId
	InvalidConventionId
	EnvFileLoadFailedId
)

type MarkdownMsg string

// Issue is a troubleshooting guide shown below errors of one kind.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

// Title returns the text of the guide's first top-level heading.
func (i *Issue) Title() string {
	for _, line := range strings.Split(string(i.mdMsg), "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

// Render renders the issue's markdown with the glamour style at stylePath
// (a standard style name such as "dark", "light" or "notty" also works).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	missingEnvVarIssue = &Issue{
		id: MissingEnvVarId,
		mdMsg: `
# A build variable is not set!

scriptlink reads the output base and the source root from variables set by
the build orchestrator. One of them is missing from the environment.

## Things you can try:
- Run the step through the orchestrator instead of by hand
- Export the variable yourself when debugging:
~~~
$ export BUILD_OUTPUT_BASE=/path/to/target
$ export BUILD_SOURCE_ROOT=$PWD
~~~

- If your orchestrator uses other names, set them in the config file:
~~~cue
convention: {
  output_base_var: "OUT_DIR"
  source_root_var: "CARGO_MANIFEST_DIR"
}
~~~`,
	}

	pathResolutionFailedIssue = &Issue{
		id: PathResolutionFailedId,
		mdMsg: `
# Could not resolve a path!

The path must name an existing regular file before it can be published,
because symlinks are resolved and the canonical location is compared to the
output base.

## Things you can try:
- Generate the script before running ` + "`scriptlink publish`" + `
- Point at the script file itself, not at the directory holding it
- Check that relative paths are relative to the source root, not to the
  current directory
- Check that the output base directory exists`,
	}

	pathOutsideBaseIssue = &Issue{
		id: PathOutsideBaseId,
		mdMsg: `
# The script is outside the output base!

Dependents can only read scripts stored under the shared output base, so
only those paths can be published.

## Things you can try:
- Write the generated script into the build output directory
- Check for symlinks pointing out of the output base
- Run ` + "`scriptlink config show`" + ` to see which variable names the output
  base is read from`,
	}

	manifestEncodeFailedIssue = &Issue{
		id: ManifestEncodeFailedId,
		mdMsg: `
# Could not encode the script manifest!

One of the collected script paths cannot be stored in the manifest, usually
because it is not valid UTF-8.

## Things you can try:
- Rename the generated script so its path is plain UTF-8
- Run with ` + "`--verbose`" + ` to see which variables were collected`,
	}

	manifestDecodeFailedIssue = &Issue{
		id: ManifestDecodeFailedId,
		mdMsg: `
# The script manifest is corrupt!

The manifest exists but is not a JSON array of strings.

## Things you can try:
- Re-run the aggregate step to rewrite it:
~~~
$ scriptlink aggregate --out-dir "$OUT_DIR"
~~~

- Check that nothing else writes a file with the same name into the output
  directory`,
	}

	fileIOFailedIssue = &Issue{
		id: FileIOFailedId,
		mdMsg: `
# A file could not be read or written!

## Common causes:
- The output directory does not exist yet
- A script listed in the manifest was deleted by a clean step
- Missing permissions on the build directory

## Things you can try:
- Create the output directory before aggregating
- Rebuild the providers so their scripts are generated again
- Check file and directory permissions`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The config file exists but could not be parsed.

## Things you can try:
- Check the CUE syntax of your config file
- Show the config path in use:
~~~
$ scriptlink config path
~~~

## Example config.cue:
~~~cue
convention: {
  dependency_prefix: "DEP_"
  key:               "GLOBAL_API_SCRIPT_PATH"
}
log: level: "info"
~~~`,
	}

	invalidConventionIssue = &Issue{
		id: InvalidConventionId,
		mdMsg: `
# Invalid naming convention!

Variable names and prefixes must be valid environment variable names, and
the manifest file must be a plain file name.

## Things you can try:
- Fix the ` + "`convention`" + ` block in your config file
- Remove the block to fall back to the defaults`,
	}

	envFileLoadFailedIssue = &Issue{
		id: EnvFileLoadFailedId,
		mdMsg: `
# Failed to load an env file!

Files passed with ` + "`--env-file`" + ` use dotenv syntax.

## Things you can try:
- Check the file exists, or add a trailing ` + "`?`" + ` to make it optional
- Use ` + "`KEY=value`" + ` lines; ` + "`export`" + ` and quotes are allowed
~~~
# .depenv
export DEP_CORE_GLOBAL_API_SCRIPT_PATH="core/global.js"
~~~`,
	}

	issues = map[Id]*Issue{
		missingEnvVarIssue.Id():        missingEnvVarIssue,
		pathResolutionFailedIssue.Id(): pathResolutionFailedIssue,
		pathOutsideBaseIssue.Id():      pathOutsideBaseIssue,
		manifestEncodeFailedIssue.Id(): manifestEncodeFailedIssue,
		manifestDecodeFailedIssue.Id(): manifestDecodeFailedIssue,
		fileIOFailedIssue.Id():         fileIOFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		invalidConventionIssue.Id():    invalidConventionIssue,
		envFileLoadFailedIssue.Id():    envFileLoadFailedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
