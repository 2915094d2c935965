package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
    <modelVersion>4.0.0</modelVersion>
    <groupId>com.example</groupId>
    <artifactId>demo</artifactId>
    <version>0.0.1-SNAPSHOT</version>
    <properties>
        <java.version>17</java.version>
        <mybatis.version>3.5.0</mybatis.version>
    </properties>
    <dependencies>
        <dependency>
            <groupId>org.springframework.boot</groupId>
            <artifactId>spring-boot-starter-web</artifactId>
        </dependency>
        <dependency>
            <groupId>org.mybatis</groupId>
            <artifactId>mybatis</artifactId>
            <version>${mybatis.version}</version>
        </dependency>
        <dependency>
            <groupId>org.projectlombok</groupId>
            <artifactId>lombok</artifactId>
            <version>1.18.36</version>
            <scope>provided</scope>
            <optional>true</optional>
        </dependency>
    </dependencies>
</project>`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(samplePom))
	require.NoError(t, err)
	assert.Equal(t, "com.example", m.GroupID)
	assert.Equal(t, "demo", m.ArtifactID)
	assert.Equal(t, "3.5.0", m.Properties["mybatis.version"])

	mybatis, ok := m.Find(Coordinate{GroupID: "org.mybatis", ArtifactID: "mybatis"})
	require.True(t, ok)
	assert.Equal(t, "${mybatis.version}", mybatis.RawVersion)
	assert.Equal(t, "3.5.0", mybatis.Version)

	lombok, ok := m.Find(Coordinate{GroupID: "org.projectlombok", ArtifactID: "lombok"})
	require.True(t, ok)
	assert.Equal(t, "provided", lombok.Scope)
	assert.True(t, lombok.Optional)

	web, ok := m.Find(Coordinate{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-starter-web"})
	require.True(t, ok)
	assert.Empty(t, web.Version)
}

func TestParseError(t *testing.T) {
	_, err := Parse(strings.NewReader("not xml at all <"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrManifestParse)
	assert.True(t, IsParseError(err))
}
