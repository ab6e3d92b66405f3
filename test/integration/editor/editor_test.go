// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package editor_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/samber/oops"

	"github.com/holomush/dynconf/internal/console"
	"github.com/holomush/dynconf/internal/schema"
)

var _ = Describe("Editing a JSON definition document", func() {
	var env *testEnv

	BeforeEach(func() {
		env = setupTestEnv("properties.json")
	})

	It("loads the document metadata", func() {
		Expect(env.schema.Title).To(Equal("Build settings"))
		Expect(env.schema.Version.String()).To(Equal("1.0.0"))
		Expect(env.schema.Names()).To(Equal([]string{"mode", "count", "ratio", "flag"}))
	})

	It("hides count until mode is B", func() {
		Expect(env.store.KeyValid("count")).To(BeFalse())

		Expect(env.run("3", "on", "0", "B", "-1")).To(Succeed())

		Expect(env.store.KeyValid("count")).To(BeTrue())
		Expect(env.finalListing()).To(ContainSubstring("1 -> count (int) :  <unset>"))
	})

	It("offers B only after flag is on", func() {
		opts, ok := env.store.Options("mode")
		Expect(ok).To(BeTrue())
		Expect(opts).To(Equal([]string{"A"}))

		Expect(env.run("0", "B", "3", "on", "0", "B", "-1")).To(Succeed())

		Expect(env.out.String()).To(ContainSubstring("Please enter a valid choice."))
		v, ok := env.store.Value("mode")
		Expect(ok).To(BeTrue())
		Expect(v.String()).To(Equal("B"))
	})

	It("keeps a value whose condition stops holding", func() {
		Expect(env.run("3", "on", "0", "B", "1", "4", "0", "A", "-1")).To(Succeed())

		Expect(env.store.KeyValid("count")).To(BeFalse())
		v, ok := env.store.Value("count")
		Expect(ok).To(BeTrue())
		Expect(v.String()).To(Equal("4"))
		Expect(env.finalListing()).NotTo(ContainSubstring("count"))
	})

	It("reports bad input and carries on", func() {
		Expect(env.run("nope", "12", "-5", "1", "2", "1.5e", "2", "0.25", "-1")).To(Succeed())

		out := env.out.String()
		Expect(out).To(ContainSubstring("Please enter an integer value."))
		Expect(out).To(ContainSubstring("Please enter a valid choice."))
		Expect(out).To(ContainSubstring("Please enter a floating point value."))
		Expect(env.finalListing()).To(ContainSubstring("2 -> ratio (float) :  0.25"))
	})

	It("fails with INPUT_CLOSED when input ends before -1", func() {
		err := env.run("0", "A")

		oopsErr, ok := oops.AsOops(err)
		Expect(ok).To(BeTrue())
		Expect(oopsErr.Code()).To(BeEquivalentTo(console.CodeInputClosed))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		env.ctx = ctx

		Expect(env.run("-1")).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Editing a YAML definition document", func() {
	var env *testEnv

	BeforeEach(func() {
		env = setupTestEnv("properties.yaml")
	})

	It("evaluates textual key conditions", func() {
		Expect(env.store.KeyValid("cert_path")).To(BeFalse())
		Expect(env.store.KeyValid("timeout")).To(BeFalse())

		Expect(env.run("0", "https", "1", "8443", "-1")).To(Succeed())

		Expect(env.store.KeyValid("cert_path")).To(BeTrue())
		Expect(env.store.KeyValid("timeout")).To(BeTrue())
	})

	It("treats port numerically", func() {
		Expect(env.run("1", "80", "-1")).To(Succeed())

		Expect(env.store.KeyValid("timeout")).To(BeFalse())
	})

	It("gates grpc on an internal host", func() {
		Expect(env.store.ValueValid("protocol", "grpc")).To(BeFalse())

		Expect(env.run("4", "db.internal", "0", "grpc", "-1")).To(Succeed())

		v, ok := env.store.Value("protocol")
		Expect(ok).To(BeTrue())
		Expect(v.String()).To(Equal("grpc"))
		Expect(env.finalListing()).To(ContainSubstring("cert_path (path)"))
	})

	It("rejects grpc for a public host", func() {
		Expect(env.run("4", "example.com", "0", "grpc", "-1")).To(Succeed())

		v, _ := env.store.Value("protocol")
		Expect(v.IsSet()).To(BeFalse())
		Expect(env.out.String()).To(ContainSubstring("Please enter a valid choice."))
	})
})

var _ = Describe("Loading invalid definition documents", func() {
	DescribeTable("fails with SCHEMA_PARSE",
		func(name string) {
			_, err := schema.LoadFile(fixture(name))
			Expect(err).To(HaveOccurred())
			Expect(schema.IsParseError(err)).To(BeTrue())
		},
		Entry("truncated JSON", "malformed.json"),
		Entry("undeclared operand", "undeclared_operand.json"),
	)
})
