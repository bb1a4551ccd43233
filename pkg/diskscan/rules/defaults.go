package rules

import "github.com/mdemirhan/dux/pkg/diskscan/types"

// Defaults returns the built-in pattern rules covering common temp, cache,
// and build-artifact locations across language ecosystems. Callers append
// their own rules on top; Compile does not care about provenance.
func Defaults() []types.PatternRule {
	var all []types.PatternRule
	all = append(all, defaultTempRules()...)
	all = append(all, defaultCacheRules()...)
	all = append(all, defaultBuildArtifactRules()...)
	return all
}

func defaultTempRules() []types.PatternRule {
	return []types.PatternRule{
		{Name: "System Temp", Pattern: "**/tmp/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "User Temp", Pattern: "**/.tmp/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "Log Files", Pattern: "**/*.log", Category: types.Temp, ApplyTo: types.ApplyFile},
		{Name: "Python Bytecode", Pattern: "**/__pycache__/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "Pytest Cache", Pattern: "**/.pytest_cache/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "Mypy Cache", Pattern: "**/.mypy_cache/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "Ruff Cache", Pattern: "**/.ruff_cache/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "Coverage Files", Pattern: "**/.coverage*", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "Editor Swaps", Pattern: "**/*.{swp,swo,tmp,bak}", Category: types.Temp, ApplyTo: types.ApplyFile},
		{Name: "macOS Metadata", Pattern: "**/.DS_Store", Category: types.Temp, ApplyTo: types.ApplyFile},
		{Name: "npm Logs", Pattern: "**/npm-debug.log*", Category: types.Temp, ApplyTo: types.ApplyFile},
		{Name: "Yarn Logs", Pattern: "**/yarn-error.log*", Category: types.Temp, ApplyTo: types.ApplyFile},
		{Name: "Crash Reports", Pattern: "**/Library/Application Support/CrashReporter/**", Category: types.Temp, ApplyTo: types.ApplyBoth},
		{Name: "SQLite Journals", Pattern: "**/*.db-journal", Category: types.Temp, ApplyTo: types.ApplyFile},
	}
}

func defaultCacheRules() []types.PatternRule {
	return []types.PatternRule{
		{Name: "npm Cache", Pattern: "**/.npm/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Yarn Cache", Pattern: "**/.cache/yarn/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "pnpm Store", Pattern: "**/.pnpm-store/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "pip Cache", Pattern: "**/.cache/pip/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "uv Cache", Pattern: "**/.cache/uv/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "poetry Cache", Pattern: "**/.cache/pypoetry/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "conda Packages", Pattern: "**/.conda/pkgs/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "NuGet Cache", Pattern: "**/.nuget/packages/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Composer Cache", Pattern: "**/.composer/cache/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Bundler Cache", Pattern: "**/.bundle/cache/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Gradle Cache", Pattern: "**/.gradle/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Maven Repo", Pattern: "**/.m2/repository/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Ivy Cache", Pattern: "**/.ivy2/cache/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "SBT Boot", Pattern: "**/.sbt/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Coursier Cache", Pattern: "**/.cache/coursier/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Cargo Registry", Pattern: "**/.cargo/registry/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "rustup Downloads", Pattern: "**/.rustup/downloads/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Go Module Cache", Pattern: "**/go/pkg/mod/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Go Build Cache", Pattern: "**/.cache/go-build/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Turbo Cache", Pattern: "**/.turbo/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Parcel Cache", Pattern: "**/.parcel-cache/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Node GYP", Pattern: "**/.node-gyp/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Kube Cache", Pattern: "**/.kube/cache/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Ansible Temp", Pattern: "**/.ansible/tmp/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "HuggingFace Cache", Pattern: "**/.cache/huggingface/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "PyTorch Cache", Pattern: "**/.cache/torch/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Whisper Cache", Pattern: "**/.cache/whisper/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "Ollama Models", Pattern: "**/.ollama/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
		{Name: "pre-commit Cache", Pattern: "**/.cache/pre-commit/**", Category: types.Cache, ApplyTo: types.ApplyBoth},
	}
}

func defaultBuildArtifactRules() []types.PatternRule {
	return []types.PatternRule{
		{Name: "node_modules", Pattern: "**/node_modules/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Bower Components", Pattern: "**/bower_components/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Next.js build", Pattern: "**/.next/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Nuxt build", Pattern: "**/.nuxt/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Python venv", Pattern: "**/.venv/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Python venv", Pattern: "**/venv/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Python cache", Pattern: "**/__pycache__/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Python Egg Info", Pattern: "**/*.egg-info", Category: types.BuildArtifact, ApplyTo: types.ApplyDir, StopRecursion: true},
		{Name: "tox env", Pattern: "**/.tox/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Build dir", Pattern: "**/build/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Dist dir", Pattern: "**/dist/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Object files", Pattern: "**/obj/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Coverage artifacts", Pattern: "**/coverage/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Rust target", Pattern: "**/target/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Swift build", Pattern: "**/.build/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "CMake build", Pattern: "**/CMakeFiles/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
		{Name: "Zig cache", Pattern: "**/zig-cache/**", Category: types.BuildArtifact, ApplyTo: types.ApplyBoth, StopRecursion: true},
	}
}
