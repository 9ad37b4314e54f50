package tempo

import "github.com/msfrank/tempo-recipe/recipe"

// Requirement tables, one per revision. These are pinned references into
// the timbre channel and must not be computed.
var (
	requires1 = recipe.MustParseDependencies(
		"absl/20250127.1@timbre",
		"antlr/4.9.3@timbre",
		"boost/1.88.0@timbre",
		"croaring/1.1.5@timbre",
		"fmt/9.1.0@timbre",
		"flatbuffers/23.5.26@timbre",
		"gtest/1.14.0@timbre",
		"hdrhistogram/0.9.6@timbre",
		"jemalloc/5.3.0@timbre",
		"openssl/3.2.0@timbre",
		"rapidjson/20250205.1@timbre",
		"utfcpp/4.0.6@timbre",
	)

	requires2 = requires1

	requires3 = recipe.MustParseDependencies(
		"absl/20250127.1@timbre",
		"antlr/4.9.3@timbre",
		"boost/1.88.0@timbre",
		"croaring/1.1.5@timbre",
		"fmt/11.1.4@timbre",
		"flatbuffers/23.5.26@timbre",
		"gtest/1.14.0@timbre",
		"hdrhistogram/0.9.6@timbre",
		"jemalloc/5.3.0@timbre",
		"openssl/3.5.0@timbre",
		"rapidjson/20250205.1@timbre",
		"utfcpp/4.0.6@timbre",
	)

	requires4 = recipe.MustParseDependencies(
		"absl/20250127.1@timbre",
		"antlr/4.9.3@timbre",
		"boost/1.88.0@timbre",
		"croaring/1.1.5@timbre",
		"fmt/11.1.4@timbre",
		"flatbuffers/24.3.25@timbre",
		"gtest/1.16.0@timbre",
		"hdrhistogram/0.9.6@timbre",
		"jemalloc/5.3.0@timbre",
		"openssl/3.5.0@timbre",
		"rapidjson/20250205.1@timbre",
		"utfcpp/4.0.6@timbre",
	)

	requires5 = recipe.MustParseDependencies(
		"absl/20250127.1@timbre",
		"antlr/4.13.2@timbre",
		"boost/1.88.0@timbre",
		"croaring/1.1.5@timbre",
		"fmt/11.1.4@timbre",
		"flatbuffers/24.3.25@timbre",
		"gtest/1.16.0@timbre",
		"hdrhistogram/0.9.6@timbre",
		"jemalloc/5.3.0@timbre",
		"openssl/3.5.0@timbre",
		"rapidjson/20250205.1@timbre",
		"utfcpp/4.0.6@timbre",
	)
)
