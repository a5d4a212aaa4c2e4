package verify_test

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/manifest"
	"github.com/fixitylab/checksum-services/models/common"
	"github.com/fixitylab/checksum-services/registry"
	"github.com/fixitylab/checksum-services/verify"
)

const emptyMD5 = "d41d8cd98f00b204e9800998ecf8427e"

func parseSFV(t *testing.T, text string) *manifest.Document {
	md5, err := registry.Resolve("md5")
	require.Nil(t, err)
	doc, err := manifest.Parse(constants.StyleSFV, []byte(text), md5)
	require.Nil(t, err)
	return doc
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVerifyEmptyFileOk(t *testing.T) {
	context := common.NewContext()
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.bin", "")

	doc := parseSFV(t, emptyMD5+"  "+path+"\n")
	engine := verify.NewEngine(context, verify.Policy{})
	summary, outcomes := engine.Verify(doc, verify.LocalRecompute(nil))

	require.Equal(t, 1, len(outcomes))
	assert.Equal(t, constants.OutcomeOk, outcomes[0].Status)
	assert.Equal(t, 1, summary.OkCount)
	assert.True(t, summary.Succeeded)
}

func TestVerifySingleByteCorruption(t *testing.T) {
	context := common.NewContext()
	dir := t.TempDir()
	path := writeFile(t, dir, "data.bin", "Hello, world?")

	// The manifest records the digest of "Hello, world!".
	doc := parseSFV(t, "6cd3556deb0da54bca060b4c39479839  "+path+"\n")
	engine := verify.NewEngine(context, verify.Policy{})
	summary, outcomes := engine.Verify(doc, verify.LocalRecompute(nil))

	require.Equal(t, 1, len(outcomes))
	assert.Equal(t, constants.OutcomeFailed, outcomes[0].Status)
	assert.NotEmpty(t, outcomes[0].ComputedDigest)
	assert.Equal(t, 1, summary.FailedCount)
	assert.False(t, summary.Succeeded)
}

func TestVerifyMixedManifest(t *testing.T) {
	context := common.NewContext()
	dir := t.TempDir()
	var lines []string
	for i := 0; i < 9; i++ {
		content := fmt.Sprintf("content %d", i)
		path := writeFile(t, dir, fmt.Sprintf("f%d.txt", i), content)
		md5, err := registry.Resolve("md5")
		require.Nil(t, err)
		digest, _, err := md5.Compute(strings.NewReader(content))
		require.Nil(t, err)
		lines = append(lines, fmt.Sprintf("%x  %s", digest, path))
	}
	corrupt := writeFile(t, dir, "corrupt.txt", "tampered")
	lines = append(lines, emptyMD5+"  "+corrupt)

	doc := parseSFV(t, strings.Join(lines, "\n")+"\n")
	engine := verify.NewEngine(context, verify.Policy{})
	summary, outcomes := engine.Verify(doc, verify.LocalRecompute(nil))

	require.Equal(t, 10, len(outcomes))
	for i := 0; i < 9; i++ {
		assert.Equal(t, constants.OutcomeOk, outcomes[i].Status)
	}
	assert.Equal(t, constants.OutcomeFailed, outcomes[9].Status)
	assert.Equal(t, 9, summary.OkCount)
	assert.Equal(t, 1, summary.FailedCount)
	assert.Equal(t, 10, summary.Total())
	assert.False(t, summary.Succeeded)
}

func TestVerifyMissingFile(t *testing.T) {
	context := common.NewContext()
	missing := filepath.Join(t.TempDir(), "gone.bin")
	doc := parseSFV(t, emptyMD5+"  "+missing+"\n")

	engine := verify.NewEngine(context, verify.Policy{})
	summary, outcomes := engine.Verify(doc, verify.LocalRecompute(nil))
	require.Equal(t, 1, len(outcomes))
	assert.Equal(t, constants.OutcomeMissingFile, outcomes[0].Status)
	assert.True(t, errors.Is(outcomes[0].Err, fs.ErrNotExist))
	assert.Equal(t, 1, summary.MissingCount)
	assert.False(t, summary.Succeeded)

	engine = verify.NewEngine(context, verify.Policy{IgnoreMissing: true})
	summary, outcomes = engine.Verify(doc, verify.LocalRecompute(nil))
	assert.Equal(t, constants.OutcomeMissingFile, outcomes[0].Status)
	assert.Equal(t, 1, summary.MissingCount)
	assert.True(t, summary.Succeeded)
}

func TestVerifyMalformedLines(t *testing.T) {
	context := common.NewContext()
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.bin", "")
	text := emptyMD5 + "  " + path + "\n" +
		"not a checksum line\n"
	doc := parseSFV(t, text)

	// Malformed lines surface as outcomes under every policy; only
	// strict and warn let them flip the verdict.
	for _, policy := range []verify.Policy{{}, {Strict: true}, {Warn: true}} {
		engine := verify.NewEngine(context, policy)
		summary, outcomes := engine.Verify(doc, verify.LocalRecompute(nil))
		require.Equal(t, 2, len(outcomes))
		assert.Equal(t, constants.OutcomeOk, outcomes[0].Status)
		assert.Equal(t, constants.OutcomeMalformed, outcomes[1].Status)
		require.NotNil(t, outcomes[1].Diagnostic)
		assert.Equal(t, 2, outcomes[1].Diagnostic.LineNumber)
		assert.Equal(t, 1, summary.MalformedCount)

		expectSuccess := !policy.Strict && !policy.Warn
		assert.Equal(t, expectSuccess, summary.Succeeded, fmt.Sprintf("%+v", policy))
	}
}

func TestVerifyOutcomeOrderMatchesEntries(t *testing.T) {
	context := common.NewContext()
	dir := t.TempDir()
	first := writeFile(t, dir, "first.bin", "")
	third := writeFile(t, dir, "third.bin", "")
	text := emptyMD5 + "  " + first + "\n" +
		"garbage\n" +
		emptyMD5 + "  " + third + "\n"
	doc := parseSFV(t, text)

	engine := verify.NewEngine(context, verify.Policy{})
	_, outcomes := engine.Verify(doc, verify.LocalRecompute(nil))
	require.Equal(t, 3, len(outcomes))
	assert.Equal(t, first, outcomes[0].Record.FileLabel)
	assert.Equal(t, constants.OutcomeMalformed, outcomes[1].Status)
	assert.Equal(t, third, outcomes[2].Record.FileLabel)
}

func TestVerifyUnreadableFileFails(t *testing.T) {
	context := common.NewContext()
	dir := t.TempDir()
	path := writeFile(t, dir, "data.bin", "")
	doc := parseSFV(t, emptyMD5+"  "+path+"\n")

	readErr := errors.New("read: input/output error")
	recompute := func(alg *registry.Algorithm, fileLabel string) ([]byte, error) {
		return nil, readErr
	}
	engine := verify.NewEngine(context, verify.Policy{})
	summary, outcomes := engine.Verify(doc, recompute)
	require.Equal(t, 1, len(outcomes))
	assert.Equal(t, constants.OutcomeFailed, outcomes[0].Status)
	assert.Equal(t, readErr, outcomes[0].Err)
	assert.Equal(t, 1, summary.FailedCount)
	assert.Equal(t, 0, summary.MissingCount)
	assert.False(t, summary.Succeeded)
}

func TestLocalRecomputeStdin(t *testing.T) {
	md5, err := registry.Resolve("md5")
	require.Nil(t, err)
	recompute := verify.LocalRecompute(strings.NewReader("Hello, world!"))
	digest, err := recompute(md5, "-")
	require.Nil(t, err)
	assert.Equal(t, "6cd3556deb0da54bca060b4c39479839", fmt.Sprintf("%x", digest))
}
