package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/voxsplit/voxsplit-be/src/shared/config"
)

var _ = Describe("CloudStorage", func() {
	It("exposes the prod host and bucket", func() {
		var conf config.CloudStorage = config.ProdCloudStorage{
			StorageHost: "https://storage.googleapis.com",
			SecretKey:   "{}",
			BucketName:  "voxsplit-prod",
		}

		Expect(conf.GetStorageHost()).To(Equal("https://storage.googleapis.com"))
		Expect(conf.GetBucket()).To(Equal("voxsplit-prod"))
	})

	It("exposes the local host and bucket", func() {
		var conf config.CloudStorage = config.LocalCloudStorage{
			StorageHost:  "http://localhost:4443",
			HostEndpoint: "http://localhost:4443/storage/v1/",
			BucketName:   "voxsplit-dev",
		}

		Expect(conf.GetStorageHost()).To(Equal("http://localhost:4443"))
		Expect(conf.GetBucket()).To(Equal("voxsplit-dev"))
	})
})
