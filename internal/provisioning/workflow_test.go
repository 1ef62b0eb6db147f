package provisioning_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geodata/etlprov/internal/acceptance"
	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/config/wizard"
	"github.com/geodata/etlprov/internal/connectivity"
	"github.com/geodata/etlprov/internal/envfile"
	"github.com/geodata/etlprov/internal/provisioning"
)

// fakeVerifier answers connectivity checks per kind and records the order.
type fakeVerifier struct {
	failures map[config.Kind]error
	calls    []config.Kind
}

func (f *fakeVerifier) Verify(_ context.Context, p *config.ConnectionProfile) (*connectivity.Result, error) {
	f.calls = append(f.calls, p.Kind)
	if err := f.failures[p.Kind]; err != nil {
		return nil, &config.ConnectionError{Kind: p.Kind, Endpoint: p.Endpoint(), Err: err}
	}
	return &connectivity.Result{Kind: p.Kind, Endpoint: p.Endpoint(), ServerTime: time.Now()}, nil
}

var _ = Describe("Credential provisioning", func() {
	var (
		settings *config.Settings
		verifier *fakeVerifier
		answers  map[string]string
		output   string
	)

	run := func() (*provisioning.Context, error) {
		pc := provisioning.NewContext(
			context.Background(),
			settings,
			wizard.NewScripted(answers),
			verifier,
			acceptance.New(settings),
			nil,
		)
		return pc, provisioning.NewProvisionPipeline(settings).Run(pc)
	}

	BeforeEach(func() {
		dir := GinkgoT().TempDir()
		output = filepath.Join(dir, ".env")

		settings = config.DefaultSettings()
		settings.OutputPath = output
		settings.SkipAcceptance = true

		verifier = &fakeVerifier{failures: map[config.Kind]error{}}
		answers = map[string]string{
			config.KeyOraclePassword:   "oracleSecret1",
			config.KeyPostgresPassword: "pgSecret1",
		}
	})

	Context("with all defaults and both secrets", func() {
		It("verifies both stores and writes the documented values", func() {
			pc, err := run()
			Expect(err).NotTo(HaveOccurred())

			Expect(verifier.calls).To(Equal([]config.Kind{config.KindSource, config.KindDestination}))

			values, err := envfile.Load(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(Equal(map[string]string{
				"ORACLE_HOST":         "192.168.10.243",
				"ORACLE_PORT":         "1521",
				"ORACLE_SERVICE_NAME": "ORCL",
				"ORACLE_USER":         "GEODATA",
				"ORACLE_PASSWORD":     "oracleSecret1",
				"POSTGRES_HOST":       "localhost",
				"POSTGRES_PORT":       "5432",
				"POSTGRES_DATABASE":   "postgres",
				"POSTGRES_USER":       "postgres",
				"POSTGRES_PASSWORD":   "pgSecret1",
				"ETL_LOAD_STRATEGY":   "replace",
				"ETL_QUERY_TIMEOUT":   "300",
				"ETL_BATCH_SIZE":      "1000",
				"ETL_LOG_LEVEL":       "INFO",
				"SQL_SCRIPTS_PATH":    "/opt/etl_geodata/sql_scripts",
				"LOG_DIRECTORY":       "/opt/etl_geodata/logs",
				"ENV":                 "production",
			}))

			info, err := os.Stat(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))

			Expect(pc.State.Written.BackedUp).To(BeFalse())
			Expect(pc.State.Verifications).To(HaveLen(2))
		})

		It("keeps exactly one backup across repeated runs", func() {
			Expect(os.WriteFile(output, []byte("GENERATION=0\n"), 0o600)).To(Succeed())

			_, err := run()
			Expect(err).NotTo(HaveOccurred())
			first, err := os.ReadFile(output)
			Expect(err).NotTo(HaveOccurred())

			answers[config.KeyOracleHost] = "10.0.0.5"
			_, err = run()
			Expect(err).NotTo(HaveOccurred())

			backup, err := os.ReadFile(envfile.BackupPath(output))
			Expect(err).NotTo(HaveOccurred())
			Expect(backup).To(Equal(first))

			info, err := os.Stat(envfile.BackupPath(output))
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))

			entries, err := os.ReadDir(filepath.Dir(output))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
		})
	})

	Context("with an empty Oracle secret", func() {
		BeforeEach(func() {
			delete(answers, config.KeyOraclePassword)
		})

		It("stops before any connectivity attempt or write", func() {
			_, err := run()
			Expect(err).To(MatchError(config.ErrMissingCredential))
			Expect(verifier.calls).To(BeEmpty())
			Expect(output).NotTo(BeAnExistingFile())
		})

		It("leaves an existing file untouched", func() {
			Expect(os.WriteFile(output, []byte("KEEP=1\n"), 0o600)).To(Succeed())

			_, err := run()
			Expect(err).To(HaveOccurred())

			data, err := os.ReadFile(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("KEEP=1\n"))
			Expect(envfile.BackupPath(output)).NotTo(BeAnExistingFile())
		})
	})

	Context("when the destination is unreachable", func() {
		BeforeEach(func() {
			verifier.failures[config.KindDestination] = errors.New("dial tcp [::1]:5432: connect: connection refused")
		})

		It("fails after the source check and writes nothing", func() {
			Expect(os.WriteFile(output, []byte("KEEP=1\n"), 0o600)).To(Succeed())

			_, err := run()
			Expect(err).To(MatchError(config.ErrConnection))
			Expect(verifier.calls).To(Equal([]config.Kind{config.KindSource, config.KindDestination}))

			data, err := os.ReadFile(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("KEEP=1\n"))
		})

		It("writes anyway in the write-only variant", func() {
			settings.SkipVerify = true

			_, err := run()
			Expect(err).NotTo(HaveOccurred())
			Expect(verifier.calls).To(BeEmpty())
			Expect(output).To(BeAnExistingFile())
		})
	})

	Context("when the runtime rejects the document", func() {
		It("writes nothing", func() {
			settings.SkipAcceptance = false
			settings.RuntimeDir = GinkgoT().TempDir()
			settings.AcceptanceCommand = `sh -c 'echo "ValueError: bad config" >&2; exit 1'`
			if _, err := os.Stat("/bin/sh"); err != nil {
				Skip("no /bin/sh available")
			}

			_, err := run()
			Expect(err).To(MatchError(config.ErrAcceptance))
			Expect(output).NotTo(BeAnExistingFile())
		})

		It("rejects values that cannot be stored unquoted", func() {
			answers[config.KeyPostgresPassword] = "pg #1"

			_, err := run()
			Expect(err).To(MatchError(config.ErrAcceptance))
			Expect(output).NotTo(BeAnExistingFile())
		})

		It("rejects a ${...} reference in a secret", func() {
			answers[config.KeyOraclePassword] = "pa${HOME}"

			_, err := run()
			Expect(err).To(MatchError(config.ErrAcceptance))
			Expect(err.Error()).To(ContainSubstring("${...}"))
			Expect(output).NotTo(BeAnExistingFile())
		})
	})

	Context("with a $ in the secrets", func() {
		BeforeEach(func() {
			answers[config.KeyOraclePassword] = "Secret$1"
			answers[config.KeyPostgresPassword] = "pa$WORD"
		})

		It("writes them unquoted and reads them back unchanged", func() {
			_, err := run()
			Expect(err).NotTo(HaveOccurred())

			raw, err := os.ReadFile(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring("\nORACLE_PASSWORD=Secret$1\n"))
			Expect(string(raw)).To(ContainSubstring("\nPOSTGRES_PASSWORD=pa$WORD\n"))

			values, err := envfile.Load(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(HaveKeyWithValue(config.KeyOraclePassword, "Secret$1"))
			Expect(values).To(HaveKeyWithValue(config.KeyPostgresPassword, "pa$WORD"))
		})
	})

	Context("with advanced options", func() {
		It("writes the extended runtime options", func() {
			settings.Advanced = true
			answers[config.KeyTablePrefix] = "stg_"

			_, err := run()
			Expect(err).NotTo(HaveOccurred())

			values, err := envfile.Load(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(HaveKeyWithValue(config.KeyTablePrefix, "stg_"))
			Expect(values).To(HaveKeyWithValue(config.KeyLogBackupCount, "5"))
		})
	})
})
