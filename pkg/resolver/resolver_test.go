package resolver

import (
	"strings"
	"testing"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
	"github.com/arthur-debert/cssuseref/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveCase is written with backslashes and converted per style, the
// same way the fixtures of the asset pipeline were shared across
// platforms.
type resolveCase struct {
	name         string
	cssRel       string
	url          string
	base         string
	newURL       string
	assetPath    string
	newAssetFile string
}

var resolveCases = []resolveCase{
	{
		name:         "css_2_deep_url_2_up",
		cssRel:       `css\page\home.css`,
		url:          "../../images/foo.png?a=123",
		base:         "assets",
		newURL:       `url("../../assets/images/foo.png?a=123")`,
		assetPath:    `..\..\images\foo.png`,
		newAssetFile: `assets\images\foo.png`,
	},
	{
		name:         "css_2_deep_url_1_up",
		cssRel:       `test\fixtures\01.css`,
		url:          "../fonts/font1.woff?a=123",
		base:         "fonts",
		newURL:       `url("../../fonts/fonts/font1.woff?a=123")`,
		assetPath:    `..\fonts\font1.woff`,
		newAssetFile: `fonts\fonts\font1.woff`,
	},
	{
		name:         "css_1_deep_url_1_up",
		cssRel:       `fixtures\01.css`,
		url:          "../fonts/font1.woff?a=123",
		base:         "fonts",
		newURL:       `url("../fonts/fonts/font1.woff?a=123")`,
		assetPath:    `..\fonts\font1.woff`,
		newAssetFile: `fonts\fonts\font1.woff`,
	},
	{
		name:         "css_1_deep_url_0_up",
		cssRel:       `fixtures\01.css`,
		url:          "fonts/font1.woff?a=123",
		base:         "fonts",
		newURL:       `url("../fonts/fonts/font1.woff?a=123")`,
		assetPath:    `fonts\font1.woff`,
		newAssetFile: `fonts\fonts\font1.woff`,
	},
	{
		name:         "css_at_root_url_0_up",
		cssRel:       `01.css`,
		url:          "fonts/font1.woff?a=123",
		base:         "fonts",
		newURL:       `url("fonts/fonts/font1.woff?a=123")`,
		assetPath:    `fonts\font1.woff`,
		newAssetFile: `fonts\fonts\font1.woff`,
	},
	{
		name:         "url_0_up_multilevel_base",
		cssRel:       `fixtures\01.css`,
		url:          "fonts/font1.woff?a=123",
		base:         `fonts\foo`,
		newURL:       `url("../fonts/foo/fonts/font1.woff?a=123")`,
		assetPath:    `fonts\font1.woff`,
		newAssetFile: `fonts\foo\fonts\font1.woff`,
	},
	{
		name:         "url_1_up_multilevel_base",
		cssRel:       `fixtures\01.css`,
		url:          "../fonts/font1.woff?a=123",
		base:         `fonts\foo`,
		newURL:       `url("../fonts/foo/fonts/font1.woff?a=123")`,
		assetPath:    `..\fonts\font1.woff`,
		newAssetFile: `fonts\foo\fonts\font1.woff`,
	},
	{
		name:         "blank_base_css_1_deep_url_0_up",
		cssRel:       `fixtures\01.css`,
		url:          "fonts/font1.woff?a=123",
		base:         "",
		newURL:       `url("../fonts/font1.woff?a=123")`,
		assetPath:    `fonts\font1.woff`,
		newAssetFile: `fonts\font1.woff`,
	},
	{
		name:         "one_dir_base_css_2_deep_url_2_up",
		cssRel:       `src\app\index.css`,
		url:          "../../bower_components/font-awesome/fonts/fontawesome-webfont.eot?v=4.5.0",
		base:         "x",
		newURL:       `url("../../x/bower_components/font-awesome/fonts/fontawesome-webfont.eot?v=4.5.0")`,
		assetPath:    `..\..\bower_components\font-awesome\fonts\fontawesome-webfont.eot`,
		newAssetFile: `x\bower_components\font-awesome\fonts\fontawesome-webfont.eot`,
	},
	{
		name:         "blank_base_css_1_deep_url_1_up",
		cssRel:       `app\index.css`,
		url:          "../bower_components/font-awesome/fonts/fontawesome-webfont.eot?v=4.5.0",
		base:         "",
		newURL:       `url("../bower_components/font-awesome/fonts/fontawesome-webfont.eot?v=4.5.0")`,
		assetPath:    `..\bower_components\font-awesome\fonts\fontawesome-webfont.eot`,
		newAssetFile: `bower_components\font-awesome\fonts\fontawesome-webfont.eot`,
	},
	{
		name:         "blank_base_css_2_deep_url_2_up",
		cssRel:       `src\app\index.css`,
		url:          "../../bower_components/font-awesome/fonts/fontawesome-webfont.eot?v=4.5.0",
		base:         "",
		newURL:       `url("../../bower_components/font-awesome/fonts/fontawesome-webfont.eot?v=4.5.0")`,
		assetPath:    `..\..\bower_components\font-awesome\fonts\fontawesome-webfont.eot`,
		newAssetFile: `bower_components\font-awesome\fonts\fontawesome-webfont.eot`,
	},
	{
		// The asset lives above the pipeline root; it is pulled in under
		// the root next to the CSS file's top directory.
		name:         "asset_above_root_is_pulled_inside",
		cssRel:       `app\index.css`,
		url:          "../../../bower_components/font-awesome/fonts/fontawesome-webfont.eot?v=4.5.0",
		base:         "",
		newURL:       `url("../bower_components/font-awesome/fonts/fontawesome-webfont.eot?v=4.5.0")`,
		assetPath:    `..\..\..\bower_components\font-awesome\fonts\fontawesome-webfont.eot`,
		newAssetFile: `bower_components\font-awesome\fonts\fontawesome-webfont.eot`,
	},
	{
		name:         "fragment_and_query_are_kept",
		cssRel:       `css\icons.css`,
		url:          "../svg/sprite.svg?v=2#icon-home",
		base:         "static",
		newURL:       `url("../static/svg/sprite.svg?v=2#icon-home")`,
		assetPath:    `..\svg\sprite.svg`,
		newAssetFile: `static\svg\sprite.svg`,
	},
	{
		name:         "asset_next_to_root_css_blank_base",
		cssRel:       `site.css`,
		url:          "logo.png",
		base:         "",
		newURL:       `url("logo.png")`,
		assetPath:    `logo.png`,
		newAssetFile: `logo.png`,
	},
}

func withSep(p string, sep byte) string {
	return strings.ReplaceAll(p, `\`, string(sep))
}

func runResolveCases(t *testing.T, style pathstyle.PathStyle, root string) {
	t.Helper()
	r := New(style)
	sep := style.Separator()

	for _, tc := range resolveCases {
		t.Run(tc.name, func(t *testing.T) {
			cssRel := withSep(tc.cssRel, sep)
			cssAbs := style.Join(root, cssRel)
			opts := types.Options{Base: withSep(tc.base, sep)}

			got, err := r.Resolve(cssAbs, cssRel, tc.url, opts)
			require.NoError(t, err)

			assert.Equal(t, tc.newURL, got.NewURL)
			assert.Equal(t, withSep(tc.assetPath, sep), got.AssetSourcePath)
			assert.Equal(t, withSep(tc.newAssetFile, sep), got.NewAssetRelativePath)
			assert.Equal(t, style.Join(style.Dir(cssAbs), got.AssetSourcePath), got.AssetAbsolutePath)

			if opts.Base != "" {
				assert.True(t, strings.HasPrefix(got.NewAssetRelativePath, opts.Base+string(sep)),
					"%q should start with base %q", got.NewAssetRelativePath, opts.Base)
			}

			// Following the new url from the CSS file lands on the new
			// asset location.
			urlPath := strings.TrimSuffix(strings.TrimPrefix(got.NewURL, `url("`), `")`)
			ref, err := ParseReference(urlPath)
			require.NoError(t, err)
			viaURL := style.Join(root, style.Dir(cssRel), style.FromSlash(ref.PathPart))
			assert.Equal(t, style.Join(root, got.NewAssetRelativePath), viaURL)
		})
	}
}

func TestResolvePosix(t *testing.T) {
	runResolveCases(t, pathstyle.Posix(), "/work/project/src")
}

func TestResolveWindows(t *testing.T) {
	runResolveCases(t, pathstyle.Windows(), `C:\work\project\src`)
}

func TestResolveNative(t *testing.T) {
	runResolveCases(t, pathstyle.Native(), t.TempDir())
}

func TestResolvePathTransform(t *testing.T) {
	style := pathstyle.Posix()
	r := New(style)

	cssRel := "css/page/home.css"
	cssAbs := "/work/src/css/page/home.css"
	rawURL := "../../images/foo.png?a=123"

	var calls int
	opts := types.Options{Base: "assets"}
	opts.PathTransform = func(newAssetPath, gotAbs, gotRel, gotURL string, gotOpts types.Options) string {
		calls++
		assert.Equal(t, "assets/images/foo.png", newAssetPath)
		assert.Equal(t, cssAbs, gotAbs)
		assert.Equal(t, cssRel, gotRel)
		assert.Equal(t, rawURL, gotURL)
		assert.Equal(t, "assets", gotOpts.Base)
		return "totally/different/file.png"
	}

	got, err := r.Resolve(cssAbs, cssRel, rawURL, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, `url("../../totally/different/file.png?a=123")`, got.NewURL)
	assert.Equal(t, "../../images/foo.png", got.AssetSourcePath)
	assert.Equal(t, "totally/different/file.png", got.NewAssetRelativePath)
}

func TestResolvePathTransformIsTrusted(t *testing.T) {
	r := New(pathstyle.Posix())
	opts := types.Options{
		Base: "assets",
		PathTransform: func(string, string, string, string, types.Options) string {
			return "flat.png"
		},
	}

	got, err := r.Resolve("/work/src/css/site.css", "css/site.css", "img/a.png", opts)
	require.NoError(t, err)
	assert.Equal(t, "flat.png", got.NewAssetRelativePath)
	assert.Equal(t, `url("../flat.png")`, got.NewURL)
}

func TestResolveErrors(t *testing.T) {
	r := New(pathstyle.Posix())

	t.Run("relative_css_path", func(t *testing.T) {
		_, err := r.Resolve("css/site.css", "css/site.css", "a.png", types.Options{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("control_character", func(t *testing.T) {
		_, err := r.Resolve("/src/css/site.css", "css/site.css", "img/a\x7f.png", types.Options{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidURLReference))
	})

	t.Run("query_only", func(t *testing.T) {
		_, err := r.Resolve("/src/css/site.css", "css/site.css", "?v=1", types.Options{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidURLReference))
	})

	t.Run("unreachable_from_css_dir", func(t *testing.T) {
		_, err := r.Resolve("/src/site.css", "../site.css", "a.png", types.Options{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidURLReference))
	})
}

func TestCommonAncestor(t *testing.T) {
	posix := pathstyle.Posix()
	windows := pathstyle.Windows()

	tests := []struct {
		name  string
		style pathstyle.PathStyle
		a     string
		b     string
		want  string
	}{
		{"shared_prefix", posix, "/a/b/c/d", "/a/b/c/x/y", "/a/b/c"},
		{"segment_not_substring", posix, "/a/b/c", "/a/bc/d", "/a"},
		{"only_root", posix, "/x/y", "/z", "/"},
		{"identical", posix, "/a/b", "/a/b", "/a/b"},
		{"windows_shared_prefix", windows, `C:\project\src\images`, `C:\project\src\css\page`, `C:\project\src`},
		{"windows_only_volume", windows, `C:\images`, `C:\css`, `C:\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonAncestor(tt.style, tt.a, tt.b))
		})
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		value    string
		path     string
		query    string
		fragment string
	}{
		{"../../images/foo.png?a=123", "../../images/foo.png", "?a=123", ""},
		{"sprite.svg#icon", "sprite.svg", "", "#icon"},
		{"sprite.svg?v=1#icon", "sprite.svg", "?v=1", "#icon"},
		{"font.eot?#iefix", "font.eot", "?", "#iefix"},
		{"a%20b.png", "a%20b.png", "", ""},
		{"100%.png", "100%.png", "", ""},
		{"img/%zz.png?v=50%", "img/%zz.png", "?v=50%", ""},
		{"a%2", "a%2", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			ref, err := ParseReference(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.value, ref.Value)
			assert.Equal(t, tt.path, ref.PathPart)
			assert.Equal(t, tt.query, ref.Query)
			assert.Equal(t, tt.fragment, ref.Fragment)
		})
	}

	t.Run("percent_without_hex_digits", func(t *testing.T) {
		r := New(pathstyle.Posix())
		got, err := r.Resolve("/src/css/site.css", "css/site.css", "../img/100%.png", types.Options{Base: "assets"})
		require.NoError(t, err)
		assert.Equal(t, "/src/img/100%.png", got.AssetAbsolutePath)
		assert.Equal(t, `url("../assets/img/100%.png")`, got.NewURL)
	})

	t.Run("scheme_is_rejected", func(t *testing.T) {
		_, err := ParseReference("about:blank")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidURLReference))
	})
}
